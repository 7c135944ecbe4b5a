/*
Package http exposes trees over a JSON API.

Trees live in a session.Manager and are created with POST /trees. Every mutating request
(expand, select, check, drag) runs under the tree's lock and answers with the snapshot
diff it caused; the same diff is broadcast as a server-sent event to the subscribers of
GET /trees/{id}/events. Changes that happen outside a request, such as a finished load
or a hover expansion, are broadcast as well. GET /trees/{id}/rows returns a window of
render-ready rows for a virtualized list.
*/
package http

package domain

// ChainHooks combines several Hooks into one. Callbacks run in argument order; nil fields are skipped.
func ChainHooks(hooks ...Hooks) Hooks {
	var (
		expand     []func([]Key, ExpandInfo)
		sel        []func([]Key, SelectInfo)
		check      []func(CheckState, CheckInfo)
		load       []func([]Key, LoadInfo)
		loadErr    []func(error, LoadInfo)
		dragStart  []func(DragInfo)
		dragEnter  []func(DragInfo)
		dragOver   []func(DragInfo)
		dragLeave  []func(DragInfo)
		dragEnd    []func(DragInfo)
		drop       []func(DropInfo)
		diagnostic []func(Diagnostic)
		recompute  []func(RecomputeInfo)
	)
	for _, h := range hooks {
		expand = add2(expand, h.OnExpand)
		sel = add2(sel, h.OnSelect)
		check = add2(check, h.OnCheck)
		load = add2(load, h.OnLoad)
		loadErr = add2(loadErr, h.OnLoadError)
		dragStart = add1(dragStart, h.OnDragStart)
		dragEnter = add1(dragEnter, h.OnDragEnter)
		dragOver = add1(dragOver, h.OnDragOver)
		dragLeave = add1(dragLeave, h.OnDragLeave)
		dragEnd = add1(dragEnd, h.OnDragEnd)
		drop = add1(drop, h.OnDrop)
		diagnostic = add1(diagnostic, h.OnDiagnostic)
		recompute = add1(recompute, h.OnRecompute)
	}

	return Hooks{
		OnExpand:     chain2(expand),
		OnSelect:     chain2(sel),
		OnCheck:      chain2(check),
		OnLoad:       chain2(load),
		OnLoadError:  chain2(loadErr),
		OnDragStart:  chain1(dragStart),
		OnDragEnter:  chain1(dragEnter),
		OnDragOver:   chain1(dragOver),
		OnDragLeave:  chain1(dragLeave),
		OnDragEnd:    chain1(dragEnd),
		OnDrop:       chain1(drop),
		OnDiagnostic: chain1(diagnostic),
		OnRecompute:  chain1(recompute),
	}
}

func add1[A any](fs []func(A), f func(A)) []func(A) {
	if f == nil {
		return fs
	}
	return append(fs, f)
}

func add2[A, B any](fs []func(A, B), f func(A, B)) []func(A, B) {
	if f == nil {
		return fs
	}
	return append(fs, f)
}

func chain1[A any](fs []func(A)) func(A) {
	switch len(fs) {
	case 0:
		return nil
	case 1:
		return fs[0]
	}
	return func(a A) {
		for _, f := range fs {
			f(a)
		}
	}
}

func chain2[A, B any](fs []func(A, B)) func(A, B) {
	switch len(fs) {
	case 0:
		return nil
	case 1:
		return fs[0]
	}
	return func(a A, b B) {
		for _, f := range fs {
			f(a, b)
		}
	}
}

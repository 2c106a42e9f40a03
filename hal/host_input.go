package hal

// inject queues ev without blocking; it reports false when the queue is full.
func (k *hostKeyboard) inject(ev KeyEvent) bool {
	select {
	case k.ch <- ev:
		return true
	default:
		return false
	}
}

func (p *hostPointer) inject(ev PointerEvent) bool {
	select {
	case p.ch <- ev:
		return true
	default:
		return false
	}
}

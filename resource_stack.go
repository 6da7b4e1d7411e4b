package pbr

// ResourceStack releases the resources added to it in reverse order.
//
// Add resources in construction order (dependencies before dependents)
// and a single deferred Release tears everything down safely:
//
//	var stack pbr.ResourceStack
//	defer stack.Release()
//
//	tex, err := pbr.NewTextureFromFile(dev, "albedo.png")
//	if err != nil {
//		return err
//	}
//	stack.Add(tex)
type ResourceStack struct {
	items []Releaser
}

// Add registers r for release.
func (s *ResourceStack) Add(r Releaser) {
	s.items = append(s.items, r)
}

// Len returns the number of registered resources.
func (s *ResourceStack) Len() int {
	return len(s.items)
}

// Release releases every registered resource, last added first, and
// empties the stack.
func (s *ResourceStack) Release() {
	for i := len(s.items) - 1; i >= 0; i-- {
		s.items[i].Release()
	}
	s.items = nil
}

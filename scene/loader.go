package scene

import "fmt"

// Spec names a model to load.
type Spec struct {
	Kind  string  // heart | frame | obj
	Path  string  // OBJ path when Kind == "obj"
	Scale float32 // target half-extent of the largest axis
}

// Asset is a loaded model: the render mesh plus a convex collision proxy.
// For non-convex models the proxy is an icosahedron stretched to the render
// mesh's bounding box, in the spirit of keeping the hull cheap.
type Asset struct {
	Render    MeshData
	Collision MeshData
}

type result struct {
	asset Asset
	err   error
}

// Pending is an in-flight load. Poll it once per frame; "not ready yet" is a
// normal state, not an error.
type Pending struct {
	ch   chan result
	done bool
	res  result
}

// Load starts loading a model on a background goroutine. Mesh generation and
// parsing are pure CPU work; GPU upload happens later, on the main thread,
// when the caller observes readiness.
func Load(spec Spec) *Pending {
	p := &Pending{ch: make(chan result, 1)}
	go func() {
		p.ch <- build(spec)
	}()
	return p
}

// Poll returns the asset once loading has finished. ready is false while the
// load is still running; err is non-nil only when ready.
func (p *Pending) Poll() (asset Asset, ready bool, err error) {
	if !p.done {
		select {
		case p.res = <-p.ch:
			p.done = true
		default:
			return Asset{}, false, nil
		}
	}
	return p.res.asset, true, p.res.err
}

func build(spec Spec) result {
	var render MeshData
	switch spec.Kind {
	case "heart":
		render = HeartMesh()
	case "frame":
		render = FrameMesh()
	case "obj":
		m, err := LoadOBJ(spec.Path)
		if err != nil {
			return result{err: err}
		}
		render = m
	default:
		return result{err: fmt.Errorf("unknown model kind %q", spec.Kind)}
	}

	scale := spec.Scale
	if scale <= 0 {
		scale = 1
	}
	render = centerAndScale(render, scale)

	bounds := render.Bounds()
	if bounds.Degenerate() {
		// Still renderable in principle, but no collision proxy. The caller
		// checks the bounds and skips body creation.
		return result{asset: Asset{Render: render}}
	}

	he := bounds.HalfExtents()
	var collision MeshData
	switch spec.Kind {
	case "frame":
		// The slab is already convex; collide with its own corners.
		collision = boxMesh(he[0], he[1], he[2])
	default:
		collision = IcosahedronMesh(he[0], he[1], he[2])
	}

	return result{asset: Asset{Render: render, Collision: collision}}
}

package physics

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Positional correction constants. Penetration up to the allowance is
// tolerated so resting contacts do not jitter; anything deeper is pushed out
// by the correction fraction each substep.
const (
	penetrationAllowance  = 0.01
	penetrationCorrection = 0.3
)

// solveVelocities runs the configured number of relaxation passes over all
// contacts, resolving them jointly. Each pass applies a normal impulse (with
// restitution above the impact threshold) followed by a friction impulse
// clamped by the Coulomb cone.
func (w *World) solveVelocities(contacts []Contact) {
	for iter := 0; iter < w.opts.SolverIterations; iter++ {
		for i := range contacts {
			w.solveContact(&contacts[i])
		}
	}
}

func (w *World) solveContact(c *Contact) {
	mat := w.materials.Lookup(c.A.Material, c.B.Material)

	ra := r3.Sub(c.Point, c.A.Position)
	rb := r3.Sub(c.Point, c.B.Position)

	vRel := r3.Sub(c.B.velocityAt(rb), c.A.velocityAt(ra))
	vn := r3.Dot(vRel, c.Normal)
	if vn > 0 {
		return // already separating
	}

	e := mat.Restitution
	if -vn < w.opts.RestitutionThreshold {
		e = 0 // resting contact, absorb fully so the body settles
	}

	kn := effectiveMass(c.A, c.B, ra, rb, c.Normal)
	if kn == 0 {
		return
	}
	jn := -(1 + e) * vn / kn

	impulse := r3.Scale(jn, c.Normal)
	c.A.applyImpulse(r3.Scale(-1, impulse), ra)
	c.B.applyImpulse(impulse, rb)

	if mat.Friction <= 0 {
		return
	}

	// Friction against the post-impulse tangential velocity.
	vRel = r3.Sub(c.B.velocityAt(rb), c.A.velocityAt(ra))
	vt := r3.Sub(vRel, r3.Scale(r3.Dot(vRel, c.Normal), c.Normal))
	tLen := r3.Norm(vt)
	if tLen < 1e-9 {
		return
	}
	tangent := r3.Scale(1/tLen, vt)

	kt := effectiveMass(c.A, c.B, ra, rb, tangent)
	if kt == 0 {
		return
	}
	jt := -r3.Dot(vRel, tangent) / kt

	maxFriction := mat.Friction * jn
	if jt > maxFriction {
		jt = maxFriction
	} else if jt < -maxFriction {
		jt = -maxFriction
	}

	fImpulse := r3.Scale(jt, tangent)
	c.A.applyImpulse(r3.Scale(-1, fImpulse), ra)
	c.B.applyImpulse(fImpulse, rb)
}

// effectiveMass returns the denominator of the impulse equation along dir:
// the combined inverse mass of both bodies at the contact point.
func effectiveMass(a, b *Body, ra, rb, dir r3.Vec) float64 {
	k := a.InvMass + b.InvMass
	if a.Dynamic() {
		k += r3.Dot(r3.Cross(a.applyInvInertia(r3.Cross(ra, dir)), ra), dir)
	}
	if b.Dynamic() {
		k += r3.Dot(r3.Cross(b.applyInvInertia(r3.Cross(rb, dir)), rb), dir)
	}
	return k
}

// correctPositions pushes overlapping bodies apart along the contact normal,
// split by inverse mass. Run once per substep after integration; keeps
// solver penetration bounded without injecting energy.
func (w *World) correctPositions(contacts []Contact) {
	for i := range contacts {
		c := &contacts[i]
		depth := c.Depth - penetrationAllowance
		if depth <= 0 {
			continue
		}
		invMassSum := c.A.InvMass + c.B.InvMass
		if invMassSum == 0 {
			continue
		}
		corr := r3.Scale(penetrationCorrection*depth/invMassSum, c.Normal)
		if c.A.Dynamic() {
			c.A.Position = r3.Sub(c.A.Position, r3.Scale(c.A.InvMass, corr))
		}
		if c.B.Dynamic() {
			c.B.Position = r3.Add(c.B.Position, r3.Scale(c.B.InvMass, corr))
		}
	}
}

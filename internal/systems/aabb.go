package systems

import "github.com/starwake/server/internal/ecscomp"

// overlaps reports whether two axis-aligned boxes, given as (x, y, w, h),
// intersect. Touching edges (zero-area overlap) do not count, matching
// the AABB convention used throughout Collision/PowerupCollision.
func overlaps(ax, ay, aw, ah, bx, by, bw, bh float32) bool {
	return ax < bx+bw && ax+aw > bx && ay < by+bh && ay+ah > by
}

func boxOf(t *ecscomp.TransformData, s *ecscomp.SizeData) (x, y, w, h float32) {
	return t.X, t.Y, s.W, s.H
}

package systems

import (
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/wire"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// playerBulletColor and enemyBulletColor are the render hints for
// player-faction and enemy-faction bullets.
const (
	playerBulletColor uint32 = 0xFFFF55FF
	enemyBulletColor  uint32 = 0xFFAA00FF
)

// Shooting fires a player's forward gun. Cooldown always decrements;
// while the Shoot bit is held and cooldown has reached zero, the loop
// spawns one bullet per interval owed this tick, so a lagging server
// tick or a very short interval can still fire more than once per tick.
func Shooting(w donburi.World, dt float32) {
	query := donburi.NewQuery(filter.Contains(ecscomp.Shooter, ecscomp.PlayerInput, ecscomp.Transform))
	query.Each(w, func(entry *donburi.Entry) {
		shooter := ecscomp.Shooter.Get(entry)
		in := ecscomp.PlayerInput.Get(entry)
		t := ecscomp.Transform.Get(entry)

		shooter.Cooldown -= dt
		if in.Bits&wire.InputShoot == 0 {
			return
		}
		for shooter.Cooldown <= 0 {
			spawnBullet(w, t.X+20, t.Y+5, shooter.BulletSpeed, 0, ecscomp.FactionPlayer, entry.Entity(), playerBulletColor)
			shooter.Cooldown += shooter.Interval
		}
	})
}

func spawnBullet(w donburi.World, x, y, vx, vy float32, faction ecscomp.Faction, owner donburi.Entity, color uint32) donburi.Entity {
	e := w.Create(
		ecscomp.Transform,
		ecscomp.Velocity,
		ecscomp.Size,
		ecscomp.ColorRGBA,
		ecscomp.NetType,
		ecscomp.BulletTag,
		ecscomp.BulletOwner,
	)
	entry := w.Entry(e)
	ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: x, Y: y})
	ecscomp.Velocity.Set(entry, &ecscomp.VelocityData{VX: vx, VY: vy})
	ecscomp.Size.Set(entry, &ecscomp.SizeData{W: 6, H: 3})
	ecscomp.ColorRGBA.Set(entry, &ecscomp.ColorRGBAData{RGBA: color})
	ecscomp.NetType.Set(entry, &ecscomp.NetTypeData{Kind: ecscomp.NetBullet})
	ecscomp.BulletTag.Set(entry, &ecscomp.BulletTagData{Faction: faction})
	ecscomp.BulletOwner.Set(entry, &ecscomp.BulletOwnerData{Owner: owner})
	return e
}

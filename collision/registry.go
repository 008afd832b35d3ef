package collision

import "github.com/jakecoffman/cp"

// HitCandidate reports one attack-volume / vulnerability-volume overlap.
// Volumes are world-space snapshots taken at detection time. The registry
// applies no team, invincibility or accept/reject policy; that is entirely
// the callback's business.
type HitCandidate struct {
	Attacker uint64
	Victim   uint64

	AttackVolume        Circle
	VulnerabilityVolume Circle
}

// HitCallback receives hit candidates during the registry pass.
type HitCallback func(HitCandidate)

type hitEntry struct {
	owner   uint64
	pos     cp.Vector
	volumes *VolumeSet
	onHit   HitCallback
}

// HitRegistry is the per-frame entity-pair overlap tester. Participants
// re-register every frame; entries from entities that did not re-register
// are dropped at frame start, so going inactive silently removes an entity
// from hit testing. Registration order drives pair enumeration, keeping
// dispatch order deterministic.
type HitRegistry struct {
	entries []hitEntry
}

// Reset drops all registrations for a new frame.
func (r *HitRegistry) Reset() {
	if r == nil {
		return
	}
	r.entries = r.entries[:0]
}

// Register adds an entity for this frame's pass. pos is the entity origin
// used to place its entity-local volumes in world space.
func (r *HitRegistry) Register(owner uint64, pos cp.Vector, volumes *VolumeSet, onHit HitCallback) {
	if r == nil || volumes == nil {
		return
	}
	r.entries = append(r.entries, hitEntry{
		owner:   owner,
		pos:     pos,
		volumes: volumes,
		onHit:   onHit,
	})
}

// Len returns the number of registered entities.
func (r *HitRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Run performs the pass: broad-phase bounding-circle rejection over every
// unordered pair in registration order, then symmetric narrow-phase tests —
// A's attacks against B's vulnerabilities and vice versa, since attacker and
// victim are per-volume roles, not per-entity ones. Each overlapping volume
// pair dispatches one candidate to the attacker's callback.
func (r *HitRegistry) Run() {
	if r == nil {
		return
	}
	for i := 0; i < len(r.entries); i++ {
		for j := i + 1; j < len(r.entries); j++ {
			a, b := &r.entries[i], &r.entries[j]
			boundA := a.volumes.Bounding().At(a.pos)
			boundB := b.volumes.Bounding().At(b.pos)
			if !boundA.Overlaps(boundB) {
				continue
			}
			narrowPhase(a, b)
			narrowPhase(b, a)
		}
	}
}

func narrowPhase(attacker, victim *hitEntry) {
	for _, atk := range attacker.volumes.Attacks() {
		atkWorld := atk.At(attacker.pos)
		for _, vul := range victim.volumes.Vulnerabilities() {
			vulWorld := vul.At(victim.pos)
			if !atkWorld.Overlaps(vulWorld) {
				continue
			}
			if attacker.onHit != nil {
				attacker.onHit(HitCandidate{
					Attacker:            attacker.owner,
					Victim:              victim.owner,
					AttackVolume:        atkWorld,
					VulnerabilityVolume: vulWorld,
				})
			}
		}
	}
}

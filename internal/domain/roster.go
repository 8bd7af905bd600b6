package domain

import "fmt"

// Slot es un hueco del roster: una posición titular, FLEX o banco.
type Slot string

const (
	SlotQB    Slot = "QB"
	SlotRB    Slot = "RB"
	SlotWR    Slot = "WR"
	SlotTE    Slot = "TE"
	SlotFlex  Slot = "FLEX"
	SlotBench Slot = "BENCH"
)

// Slots es el orden canónico de slots del roster.
var Slots = []Slot{SlotQB, SlotRB, SlotWR, SlotTE, SlotFlex, SlotBench}

// SlotFor devuelve el slot titular propio de una posición.
func SlotFor(p Position) Slot { return Slot(p) }

// SlotCaps es la configuración de lineup de la liga: capacidad de cada slot.
type SlotCaps map[Slot]int

// DefaultSlotCaps es la configuración estándar: 1 QB, 2 RB, 2 WR, 1 TE, 1 FLEX, 6 banco.
func DefaultSlotCaps() SlotCaps {
	return SlotCaps{
		SlotQB:    1,
		SlotRB:    2,
		SlotWR:    2,
		SlotTE:    1,
		SlotFlex:  1,
		SlotBench: 6,
	}
}

// Rounds devuelve el número de rondas del draft: la suma de todos los slots, banco incluido.
func (c SlotCaps) Rounds() int {
	total := 0
	for _, s := range Slots {
		total += c[s]
	}
	return total
}

// Starters devuelve el número de slots titulares (todos menos el banco).
func (c SlotCaps) Starters() int {
	return c.Rounds() - c[SlotBench]
}

// Validate comprueba que no haya capacidades negativas ni slots desconocidos.
func (c SlotCaps) Validate() error {
	known := make(map[Slot]bool, len(Slots))
	for _, s := range Slots {
		known[s] = true
	}
	for s, n := range c {
		if !known[s] {
			return fmt.Errorf("domain.SlotCaps: unknown slot %q", s)
		}
		if n < 0 {
			return fmt.Errorf("domain.SlotCaps: negative capacity for %s", s)
		}
	}
	if c.Rounds() == 0 {
		return fmt.Errorf("domain.SlotCaps: roster has no slots")
	}
	return nil
}

// PositionCaps limita el total de jugadores por posición que un equipo puede tener.
// Es una restricción de draft, no un invariante duro.
type PositionCaps map[Position]int

// TeamCaps son los límites holgados usados por la política Baseline.
func TeamCaps() PositionCaps {
	return PositionCaps{QB: 4, RB: 8, WR: 8, TE: 3}
}

// SmartCaps son los límites ajustados que imitan cómo un humano balancea el roster.
func SmartCaps() PositionCaps {
	return PositionCaps{QB: 2, RB: 6, WR: 6, TE: 2}
}

// Roster guarda los ocupantes de cada slot. Fuera del paquete es de solo lectura:
// los jugadores entran únicamente vía Team.Draft.
// Invariante: len(filled[s]) <= caps[s] para todo slot titular y FLEX solo acepta
// RB/WR/TE. El banco no tiene tope: absorbe lo que no cabe en otro slot.
type Roster struct {
	caps   SlotCaps
	filled map[Slot][]string
}

// NewRoster crea un roster vacío con las capacidades dadas.
func NewRoster(caps SlotCaps) *Roster {
	filled := make(map[Slot][]string, len(Slots))
	for _, s := range Slots {
		filled[s] = nil
	}
	return &Roster{caps: caps, filled: filled}
}

// Caps devuelve la capacidad de un slot.
func (r *Roster) Caps(s Slot) int { return r.caps[s] }

// Filled devuelve cuántos ocupantes tiene un slot.
func (r *Roster) Filled(s Slot) int { return len(r.filled[s]) }

// Occupants devuelve una copia de los ocupantes de un slot.
func (r *Roster) Occupants(s Slot) []string {
	out := make([]string, len(r.filled[s]))
	copy(out, r.filled[s])
	return out
}

// Size devuelve el total de jugadores en el roster.
func (r *Roster) Size() int {
	n := 0
	for _, s := range Slots {
		n += len(r.filled[s])
	}
	return n
}

// OpenStarterSlots devuelve los slots titulares (FLEX incluido) sin cubrir.
func (r *Roster) OpenStarterSlots() int {
	filled := r.Size() - len(r.filled[SlotBench])
	return r.caps.Starters() - filled
}

// StarterOpen devuelve true si el slot titular de la posición tiene hueco.
func (r *Roster) StarterOpen(p Position) bool {
	s := SlotFor(p)
	return len(r.filled[s]) < r.caps[s]
}

// place coloca al jugador: slot propio si hay hueco, si no FLEX si es elegible
// y tiene hueco, si no banco. Devuelve el slot usado.
func (r *Roster) place(p Player) Slot {
	slot := SlotBench
	switch {
	case r.StarterOpen(p.Position):
		slot = SlotFor(p.Position)
	case p.Position.FlexEligible() && len(r.filled[SlotFlex]) < r.caps[SlotFlex]:
		slot = SlotFlex
	}
	r.filled[slot] = append(r.filled[slot], p.Name)
	return slot
}

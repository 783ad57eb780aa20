package game

// Combatant is one side's battle-relevant state. It is created when a room
// forms (or loaded from a persisted record for the solo endpoints) and
// discarded when the battle ends; it is never the source of truth for
// persistence.
type Combatant struct {
	Name  string `json:"name"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"maxHp"`
	MP    int    `json:"mp"`
	MaxMP int    `json:"maxMp"`
	// IsBlocking and ReflectDamage are transient: set by the block skill
	// and cleared unconditionally the moment an incoming hit consumes them.
	IsBlocking    bool `json:"isBlocking"`
	ReflectDamage bool `json:"reflectDamage"`
}

// NewCombatant returns a combatant at full health and mana.
func NewCombatant(name string, maxHP, maxMP int) *Combatant {
	return &Combatant{Name: name, HP: maxHP, MaxHP: maxHP, MP: maxMP, MaxMP: maxMP}
}

// Reset restores full HP/MP and clears the transient flags.
func (c *Combatant) Reset() {
	c.HP = c.MaxHP
	c.MP = c.MaxMP
	c.IsBlocking = false
	c.ReflectDamage = false
}

// ApplyDamage subtracts dmg from HP, floored at zero.
func (c *Combatant) ApplyDamage(dmg int) {
	c.HP -= dmg
	if c.HP < 0 {
		c.HP = 0
	}
}

// ApplyHealing adds amount to HP, capped at MaxHP.
func (c *Combatant) ApplyHealing(amount int) {
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
}

// SpendMP deducts cost from MP, floored at zero.
func (c *Combatant) SpendMP(cost int) {
	c.MP -= cost
	if c.MP < 0 {
		c.MP = 0
	}
}

// RestoreMP adds amount to MP, capped at MaxMP, and returns the amount
// actually gained.
func (c *Combatant) RestoreMP(amount int) int {
	before := c.MP
	c.MP += amount
	if c.MP > c.MaxMP {
		c.MP = c.MaxMP
	}
	return c.MP - before
}

// IsDefeated reports whether the combatant has been reduced to zero HP.
func (c *Combatant) IsDefeated() bool { return c.HP <= 0 }

// Character is a selectable avatar with its battle pools, loaded from
// configuration and offered to clients during matchmaking.
type Character struct {
	Name  string `json:"name"`
	MaxHP int    `json:"max_hp"`
	MaxMP int    `json:"max_mp"`
}

// Combatant builds a fresh full-pool battle snapshot for this character.
func (ch Character) Combatant() *Combatant {
	return NewCombatant(ch.Name, ch.MaxHP, ch.MaxMP)
}

// SkillResult is the transient outcome of one skill invocation. A result
// with Success=false models a soft failure (typically not enough MP); the
// turn is still consumed by design.
type SkillResult struct {
	SkillName string `json:"skillName"`
	Damage    int    `json:"damage"`
	Healing   int    `json:"healing"`
	MPCost    int    `json:"mpCost"`
	Message   string `json:"message"`
	Success   bool   `json:"success"`
}

// BattleState is the lifecycle state of one battle/room.
type BattleState string

const (
	StateWaiting BattleState = "waiting"
	StateActive  BattleState = "active"
	StateEnded   BattleState = "ended"
)

// Side identifies one of the two participants in a battle.
type Side int

const (
	SideNone Side = iota
	SidePlayer1
	SidePlayer2
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	switch s {
	case SidePlayer1:
		return SidePlayer2
	case SidePlayer2:
		return SidePlayer1
	}
	return SideNone
}

func (s Side) String() string {
	switch s {
	case SidePlayer1:
		return "player1"
	case SidePlayer2:
		return "player2"
	}
	return "none"
}

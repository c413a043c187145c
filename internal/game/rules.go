package game

// Rules is a session's configuration. Mutable by the host while the session
// is in its lobby, frozen for good once the game goes active.
type Rules struct {
	PicksPerPlayer        int
	GrandPrizes           []string
	ConsolationPrizes     []string
	AllowReclaim          bool
	RelocateGrandPrize    bool
	RelocationIntervalSec int
	HostParticipates      bool
	EntryKey              string
	EndWhenExhausted      bool
}

func DefaultRules() Rules {
	return Rules{
		PicksPerPlayer:        1,
		RelocationIntervalSec: 10,
		HostParticipates:      true,
	}
}

// RulesPatch is the host's partial config update. Nil fields are left
// untouched. Field names follow the wire schema.
type RulesPatch struct {
	PicksPerPlayer            *int      `json:"picksPerPlayer,omitempty"`
	GrandPrizes               *[]string `json:"grandPrizes,omitempty"`
	ConsolationPrizes         *[]string `json:"consolationPrizes,omitempty"`
	AllowReclaim              *bool     `json:"allowReclaim,omitempty"`
	RelocateGrandPrize        *bool     `json:"relocateGrandPrize,omitempty"`
	RelocationIntervalSeconds *int      `json:"relocationIntervalSeconds,omitempty"`
	HostParticipates          *bool     `json:"hostParticipates,omitempty"`
	EntryKey                  *string   `json:"entryKey,omitempty"`
	EndWhenExhausted          *bool     `json:"endWhenExhausted,omitempty"`
}

// Apply validates the patch and returns the updated rules. The receiver is
// untouched on error, so a rejected patch never half-applies.
func (r Rules) Apply(p RulesPatch) (Rules, error) {
	if p.PicksPerPlayer != nil {
		if *p.PicksPerPlayer < 1 {
			return r, ErrInvalidConfig
		}
		r.PicksPerPlayer = *p.PicksPerPlayer
	}
	if p.GrandPrizes != nil {
		r.GrandPrizes = trimLabels(*p.GrandPrizes)
	}
	if p.ConsolationPrizes != nil {
		r.ConsolationPrizes = trimLabels(*p.ConsolationPrizes)
	}
	if p.AllowReclaim != nil {
		r.AllowReclaim = *p.AllowReclaim
	}
	if p.RelocateGrandPrize != nil {
		r.RelocateGrandPrize = *p.RelocateGrandPrize
	}
	if p.RelocationIntervalSeconds != nil {
		if *p.RelocationIntervalSeconds < 1 {
			return r, ErrInvalidConfig
		}
		r.RelocationIntervalSec = *p.RelocationIntervalSeconds
	}
	if p.HostParticipates != nil {
		r.HostParticipates = *p.HostParticipates
	}
	if p.EntryKey != nil {
		r.EntryKey = *p.EntryKey
	}
	if p.EndWhenExhausted != nil {
		r.EndWhenExhausted = *p.EndWhenExhausted
	}
	return r, nil
}

// trimLabels drops empty lines; the host UI submits prize lists one label
// per line.
func trimLabels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

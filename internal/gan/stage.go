package gan

import "fmt"

// StageKind determines the spatial op of a built stage.
type StageKind int

// Stage kinds.
const (
	// StageUp doubles the spatial resolution.
	StageUp StageKind = iota
	// StageDown halves the spatial resolution.
	StageDown
	// StageSame keeps the spatial resolution.
	StageSame

	stageKindCount
)

var stageKindList = [...]string{StageUp: "up", StageDown: "down", StageSame: "same"}

var _ = [1]struct{}{}[len(stageKindList)-int(stageKindCount)]

func (k StageKind) String() string {
	if k < 0 || k >= stageKindCount {
		return fmt.Sprintf("StageKind(%d)", int(k))
	}
	return stageKindList[k]
}

// ParseStageKind parses "up", "down" or "same".
func ParseStageKind(s string) (StageKind, error) {
	for i, name := range stageKindList {
		if s == name {
			return StageKind(i), nil
		}
	}
	return 0, configError("stage_kind", s, "unrecognized value (expected one of up, down, same)")
}

// StageDescriptor fully determines one stage's layers given a Config.
type StageDescriptor struct {
	Kind        StageKind
	InChannels  int
	OutChannels int
	UseBias     bool
}

// Up returns an up-stage descriptor.
func Up(in, out int, bias bool) StageDescriptor {
	return StageDescriptor{Kind: StageUp, InChannels: in, OutChannels: out, UseBias: bias}
}

// Down returns a down-stage descriptor.
func Down(in, out int, bias bool) StageDescriptor {
	return StageDescriptor{Kind: StageDown, InChannels: in, OutChannels: out, UseBias: bias}
}

// Same returns a same-stage descriptor.
func Same(in, out int, bias bool) StageDescriptor {
	return StageDescriptor{Kind: StageSame, InChannels: in, OutChannels: out, UseBias: bias}
}

// Validate checks the channel counts and the kind.
func (d StageDescriptor) Validate() error {
	if d.Kind < 0 || d.Kind >= stageKindCount {
		return configError("stage_kind", int(d.Kind), "unrecognized value")
	}
	if d.InChannels <= 0 {
		return configError("in_channels", d.InChannels, "must be positive")
	}
	if d.OutChannels <= 0 {
		return configError("out_channels", d.OutChannels, "must be positive")
	}
	return nil
}

func (d StageDescriptor) String() string {
	return fmt.Sprintf("%s(%d->%d, bias=%v)", d.Kind, d.InChannels, d.OutChannels, d.UseBias)
}

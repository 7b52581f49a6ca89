package extraction

import (
	"errors"
	"fmt"
)

// ErrMultipleBodies is returned under BodyPolicyStrict when a unit carries
// more than one recognised body element.
var ErrMultipleBodies = errors.New("unit has more than one body")

// BodyPolicy decides what happens when a unit carries several body elements.
type BodyPolicy int

const (
	// BodyPolicyLastWins checks ST, then SFC, then LD; the last one present wins.
	BodyPolicyLastWins BodyPolicy = iota

	// BodyPolicyStrict rejects units with more than one body.
	BodyPolicyStrict
)

func (p BodyPolicy) String() string {
	switch p {
	case BodyPolicyLastWins:
		return "last-wins"
	case BodyPolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("BodyPolicy(%d)", int(p))
	}
}

// ParseBodyPolicy maps a configuration value onto a BodyPolicy.
func ParseBodyPolicy(s string) (BodyPolicy, error) {
	switch s {
	case "", "last-wins":
		return BodyPolicyLastWins, nil
	case "strict":
		return BodyPolicyStrict, nil
	default:
		return 0, fmt.Errorf("unknown body policy %q (valid: last-wins, strict)", s)
	}
}

type bodySource struct {
	tag      string
	language Language
}

// Check order matters for BodyPolicyLastWins.
var (
	fullBodySources = []bodySource{
		{tag: "STSource", language: LanguageST},
		{tag: "SFCSource", language: LanguageSFC},
		{tag: "LDSource", language: LanguageLD},
	}

	// FB programs never carry ladder bodies in this model.
	fbProgramBodySources = fullBodySources[:2]
)

func decodeBody(e Element, lang Language) Body {
	switch lang {
	case LanguageST:
		return Body{Code: text(e), Language: LanguageST}
	case LanguageSFC:
		return Body{Code: SFCPlaceholder, Language: LanguageSFC}
	case LanguageLD:
		return Body{Code: LDPlaceholder, Language: LanguageLD}
	default:
		return Body{}
	}
}

// body extracts the body of unit e. owner names the unit in errors.
func (x *Extractor) body(owner string, e Element, sources []bodySource) (Body, error) {
	var (
		b     Body
		found []Language
	)
	for _, src := range sources {
		el := e.Child(src.tag)
		if el == nil {
			continue
		}
		found = append(found, src.language)
		b = decodeBody(el, src.language)
	}

	if len(found) > 1 && x.policy == BodyPolicyStrict {
		return Body{}, fmt.Errorf("%w: %s has %v", ErrMultipleBodies, owner, found)
	}
	return b, nil
}

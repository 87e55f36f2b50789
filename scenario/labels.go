package scenario

// Labels pairs a forward dictionary (internal scenario variable code to
// display name) with its exact inverse. Both maps are built once at load and
// never mutated afterwards.
type Labels struct {
	byCode map[string]string
	byName map[string]string
	codes  []string
}

func newLabels(pairs [][2]string) Labels {
	l := Labels{
		byCode: make(map[string]string, len(pairs)),
		byName: make(map[string]string, len(pairs)),
	}
	for _, pair := range pairs {
		code, name := pair[0], pair[1]
		if code == "" || name == "" {
			continue
		}
		if _, ok := l.byCode[code]; ok {
			continue
		}
		l.byCode[code] = name
		l.byName[name] = code
		l.codes = append(l.codes, code)
	}
	return l
}

// Name resolves an internal variable code to its display name.
func (l Labels) Name(code string) (string, bool) {
	name, ok := l.byCode[code]
	return name, ok
}

// Code resolves a display name back to its internal variable code.
func (l Labels) Code(name string) (string, bool) {
	code, ok := l.byName[name]
	return code, ok
}

// Names returns the display names in file order.
func (l Labels) Names() []string {
	out := make([]string, 0, len(l.codes))
	for _, code := range l.codes {
		out = append(out, l.byCode[code])
	}
	return out
}

// Codes returns the internal variable codes in file order.
func (l Labels) Codes() []string {
	out := make([]string, len(l.codes))
	copy(out, l.codes)
	return out
}

// Len reports the number of label pairs.
func (l Labels) Len() int {
	return len(l.codes)
}

// LabelSet groups the three parallel technology dictionaries consumed by the
// data store: market-share, efficiency, and emission technologies.
type LabelSet struct {
	Market     Labels
	Efficiency Labels
	Emission   Labels
}

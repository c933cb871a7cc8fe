package xmlnode

// xmlNamespace is bound to the xml prefix without declaration.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// scope is a stack of prefix bindings, one frame per open element. The
// empty prefix is the default namespace.
type scope struct {
	frames []map[string]string
}

func newScope() *scope {
	return &scope{frames: []map[string]string{{"xml": xmlNamespace, "": ""}}}
}

func (s *scope) push() {
	s.frames = append(s.frames, nil)
}

func (s *scope) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *scope) bind(prefix, uri string) {
	top := len(s.frames) - 1
	if s.frames[top] == nil {
		s.frames[top] = make(map[string]string)
	}

	s.frames[top][prefix] = uri
}

func (s *scope) lookup(prefix string) (string, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if uri, ok := s.frames[i][prefix]; ok {
			return uri, true
		}
	}

	return "", false
}

// prefixFor returns a non-default prefix currently bound to uri.
func (s *scope) prefixFor(uri string) (string, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		for prefix, bound := range s.frames[i] {
			if prefix == "" || bound != uri {
				continue
			}

			if current, _ := s.lookup(prefix); current == uri {
				return prefix, true
			}
		}
	}

	return "", false
}

func (s *scope) prefixes() map[string]struct{} {
	out := make(map[string]struct{})

	for _, frame := range s.frames {
		for prefix := range frame {
			out[prefix] = struct{}{}
		}
	}

	return out
}

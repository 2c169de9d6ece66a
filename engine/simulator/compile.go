package simulator

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ohager/signum-smartc-testbed/types"
)

// compiled is the output of the simulator's compile step: the program
// implementation bound to the source's declared name, plus every constant
// binding that was active under the source's preprocessor conditionals.
type compiled struct {
	name      string
	program   Program
	constants map[string]int64
}

var (
	programNamePattern = regexp.MustCompile(`^\s*#program\s+name\s+(\w+)`)
	definePattern      = regexp.MustCompile(`^\s*#define\s+(\w+)`)
	ifdefPattern       = regexp.MustCompile(`^\s*#(ifdef|ifndef)\s+(\w+)`)
	endifPattern       = regexp.MustCompile(`^\s*#endif\b`)
	constPattern       = regexp.MustCompile(`^\s*const\s+(?:long\s+)?(\w+)\s*=\s*(.+?)\s*;`)
)

// compileSource extracts the program name and constant bindings from contract
// source text. It is not a SmartC compiler: instruction bodies are opaque and
// execution semantics come from the registered Go program. Only the directives
// the testbed's initializer injection relies on are interpreted: #define,
// #ifdef/#ifndef/#endif, and const assignments.
func compileSource(source string, programs *Registry) (*compiled, error) {
	out := &compiled{
		constants: make(map[string]int64),
	}

	defined := map[string]bool{}
	// conditional nesting; a line is active when every enclosing frame is
	active := []bool{}

	isActive := func() bool {
		for _, frame := range active {
			if !frame {
				return false
			}
		}
		return true
	}

	scanner := bufio.NewScanner(strings.NewReader(source))
	for scanner.Scan() {
		line := scanner.Text()

		if m := ifdefPattern.FindStringSubmatch(line); m != nil {
			want := m[1] == "ifdef"
			active = append(active, defined[m[2]] == want)
			continue
		}
		if endifPattern.MatchString(line) {
			if len(active) > 0 {
				active = active[:len(active)-1]
			}
			continue
		}
		if !isActive() {
			continue
		}

		if m := programNamePattern.FindStringSubmatch(line); m != nil {
			out.name = m[1]
			continue
		}
		if m := definePattern.FindStringSubmatch(line); m != nil {
			defined[m[1]] = true
			continue
		}
		if m := constPattern.FindStringSubmatch(line); m != nil {
			value, ok, err := resolveLiteral(m[2], out.constants)
			if err != nil {
				return nil, errors.Wrapf(err, "constant %s", m[1])
			}
			if ok {
				out.constants[m[1]] = value
			}
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading contract source")
	}

	if out.name == "" {
		return nil, errors.New("contract source declares no #program name")
	}

	program, ok := programs.New(out.name)
	if !ok {
		return nil, errors.Errorf("no program registered under name %q", out.name)
	}
	out.program = program

	return out, nil
}

// resolveLiteral evaluates the right-hand side of a const assignment: a
// decimal or hexadecimal numeric literal (SmartC digit separators allowed), a
// quoted text literal of at most eight bytes, or a reference to an earlier
// constant. References to unknown identifiers resolve to nothing rather than
// failing; the contract may bind them at runtime.
func resolveLiteral(raw string, constants map[string]int64) (int64, bool, error) {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, `"`) {
		text, err := strconv.Unquote(raw)
		if err != nil {
			return 0, false, errors.Wrapf(err, "malformed text literal %s", raw)
		}
		value, err := types.TextToLong(text)
		if err != nil {
			return 0, false, err
		}
		return value, true, nil
	}

	numeric := strings.ReplaceAll(raw, "_", "")
	if value, err := strconv.ParseInt(numeric, 0, 64); err == nil {
		return value, true, nil
	}

	if value, ok := constants[raw]; ok {
		return value, true, nil
	}

	return 0, false, nil
}

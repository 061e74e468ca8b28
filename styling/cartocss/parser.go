// Package cartocss reads the variable declarations of a CartoCSS stylesheet.
//
// Only top-level variables (`@name: value;`) are kept. Rule blocks are skipped, so an .mss
// file written for a map renderer can also be used as a palette definition file.
package cartocss

import (
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

// Sheet holds the variables declared in a stylesheet, in declaration order.
type Sheet struct {
	variables map[string]string
	names     []string
}

func Parse(stylesheet string) (*Sheet, errorsx.Error) {
	sheet := &Sheet{
		variables: make(map[string]string),
	}

	var currentStatement string
	styleSheetLen := len(stylesheet)
	blockDepth := 0
	line := 1
	for i := 0; i < styleSheetLen; i++ {
		thisChar := rune(stylesheet[i])
		if i != styleSheetLen-1 {
			// handle 2 character sequences
			next2Chars := stylesheet[i : i+2]
			switch next2Chars {
			case TokenOpenBlockComment:
				// skip to end of comment
				idx := strings.Index(stylesheet[i+2:], TokenCloseBlockComment)
				if idx == -1 {
					return nil, errorsx.Errorf("unterminated block comment on line %d", line)
				}
				line += strings.Count(stylesheet[i:i+2+idx], string(TokenNewLine))
				i += idx + 3
				continue
			case TokenOpenLineComment:
				idx := strings.IndexRune(stylesheet[i:], TokenNewLine)
				if idx == -1 {
					i = styleSheetLen
					continue
				}
				// leave the newline to be counted below
				i += idx - 1
				continue
			}
		}

		// now we have dealt with 2-char statements, deal with this char
		switch thisChar {
		case TokenOpenBlock:
			blockDepth++
			currentStatement = ""
		case TokenCloseBlock:
			if blockDepth == 0 {
				return nil, errorsx.Errorf("unexpected %q on line %d", TokenCloseBlock, line)
			}
			blockDepth--
			currentStatement = ""
		case TokenEndStatement:
			// properties inside rule blocks are not variables
			if blockDepth == 0 && currentStatement != "" {
				err := sheet.processStatement(currentStatement)
				if err != nil {
					return nil, errorsx.Wrap(err, "line", line)
				}
			}
			currentStatement = ""
		case TokenNewLine:
			line++
		case TokenSpace, TokenTab, TokenCarriageRet:
		// do nothing
		default:
			currentStatement += string(thisChar)
		}
	}

	if blockDepth != 0 {
		return nil, errorsx.Errorf("%d unclosed block(s) at end of stylesheet", blockDepth)
	}

	if currentStatement != "" {
		return nil, errorsx.Errorf("statement not terminated with %q: %q", TokenEndStatement, currentStatement)
	}

	return sheet, nil
}

func (s *Sheet) processStatement(statement string) errorsx.Error {
	if !strings.HasPrefix(statement, string(TokenVariable)) {
		return errorsx.Errorf("couldn't process statement: %q", statement)
	}

	idxColon := strings.IndexRune(statement, TokenAssign)
	if idxColon == -1 {
		return errorsx.Errorf("unprocessable line: %q", statement)
	}

	varName := strings.TrimPrefix(strings.TrimSpace(statement[:idxColon]), string(TokenVariable))
	varVal := strings.TrimSpace(statement[idxColon+1:])
	if varName == "" || varVal == "" {
		return errorsx.Errorf("unprocessable line: %q", statement)
	}

	if _, ok := s.variables[varName]; !ok {
		s.names = append(s.names, varName)
	}
	s.variables[varName] = varVal
	return nil
}

// Names returns the variable names in the order they were first declared
func (s *Sheet) Names() []string {
	return append([]string(nil), s.names...)
}

// Variable returns the raw value of a variable, with references left unresolved
func (s *Sheet) Variable(name string) (string, bool) {
	val, ok := s.variables[name]
	return val, ok
}

// List resolves a variable to its list of comma separated values.
// Values referring to other variables (`@land-color`) are replaced by the values of that variable.
func (s *Sheet) List(name string) ([]string, errorsx.Error) {
	return s.list(name, make(map[string]bool))
}

func (s *Sheet) list(name string, visiting map[string]bool) ([]string, errorsx.Error) {
	if visiting[name] {
		return nil, errorsx.Errorf("variable %q refers to itself", name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	val, ok := s.variables[name]
	if !ok {
		return nil, errorsx.Errorf("variable %q is not defined", name)
	}

	var values []string
	for _, item := range strings.Split(val, string(TokenListSep)) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if !strings.HasPrefix(item, string(TokenVariable)) {
			values = append(values, item)
			continue
		}

		referenced, err := s.list(strings.TrimPrefix(item, string(TokenVariable)), visiting)
		if err != nil {
			return nil, errorsx.Wrap(err, "referencedBy", name)
		}
		values = append(values, referenced...)
	}

	return values, nil
}

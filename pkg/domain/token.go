package domain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var tokenPattern = regexp.MustCompile(`^([IOio])(\d+):(\d+)$`)

// EncodeConnection renders c as "I<instance>:<index>" or "O<instance>:<index>".
// The letter is always uppercase.
func EncodeConnection(c Connection) string {
	var sb strings.Builder
	sb.Grow(8)
	if c.Terminal.Kind == Output {
		sb.WriteByte('O')
	} else {
		sb.WriteByte('I')
	}
	sb.WriteString(strconv.FormatUint(uint64(c.Instance), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(c.Terminal.Index, 10))
	return sb.String()
}

// ParseConnection decodes a token produced by EncodeConnection. The
// letter is matched case-insensitively. Failures are *TokenError values
// wrapping ErrFormat or ErrRange.
func ParseConnection(token string) (Connection, error) {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return Connection{}, &TokenError{Token: token, Err: ErrFormat}
	}

	instance, err := parseField(m[2])
	if err != nil {
		return Connection{}, &TokenError{Token: token, Err: err}
	}
	index, err := parseField(m[3])
	if err != nil {
		return Connection{}, &TokenError{Token: token, Err: err}
	}

	kind := Input
	if m[1] == "O" || m[1] == "o" {
		kind = Output
	}
	return Connection{
		Instance: InstanceID(instance),
		Terminal: Terminal{Kind: kind, Index: index},
	}, nil
}

func parseField(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrRange
		}
		return 0, ErrFormat
	}
	return v, nil
}

// String returns the canonical token.
func (c Connection) String() string {
	return EncodeConnection(c)
}

// MarshalText lets a Connection key JSON and YAML maps.
func (c Connection) MarshalText() ([]byte, error) {
	return []byte(EncodeConnection(c)), nil
}

// UnmarshalText accepts both letter cases.
func (c *Connection) UnmarshalText(text []byte) error {
	parsed, err := ParseConnection(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var terminalPattern = regexp.MustCompile(`^([IOio])(\d+)$`)

// String renders a terminal as "I<index>" or "O<index>".
func (t Terminal) String() string {
	if t.Kind == Output {
		return "O" + strconv.FormatUint(t.Index, 10)
	}
	return "I" + strconv.FormatUint(t.Index, 10)
}

// ParseTerminal decodes the form produced by Terminal.String.
func ParseTerminal(s string) (Terminal, error) {
	m := terminalPattern.FindStringSubmatch(s)
	if m == nil {
		return Terminal{}, &TokenError{Token: s, Err: ErrFormat}
	}
	index, err := parseField(m[2])
	if err != nil {
		return Terminal{}, &TokenError{Token: s, Err: err}
	}
	if m[1] == "O" || m[1] == "o" {
		return Out(index), nil
	}
	return In(index), nil
}

func (t Terminal) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Terminal) UnmarshalText(text []byte) error {
	parsed, err := ParseTerminal(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

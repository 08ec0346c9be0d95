// Package calc evaluates the small arithmetic language customers type at
// the chatbot: decimal numbers, + - * / %, and parentheses. It is
// deliberately strict; anything outside that grammar is ErrUnparseable.
package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrDivisionByZero is returned for division or modulo by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnparseable is returned when the input is not a valid expression.
	ErrUnparseable = errors.New("expression cannot be parsed")
	// ErrNotFinite is returned when the result overflows to infinity or NaN.
	ErrNotFinite = errors.New("result is not a finite number")
)

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenOperator
	tokenLeftParen
	tokenRightParen
)

type token struct {
	kind  tokenKind
	value float64
	op    byte
}

// Evaluate parses and computes expr with the usual precedence rules:
// * / % bind tighter than + -, all operators are left associative, and a
// leading or post-operator minus negates. % is the modulo operator.
func Evaluate(expr string) (float64, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, ErrUnparseable
	}
	rpn, err := toPostfix(tokens)
	if err != nil {
		return 0, err
	}
	value, err := evalPostfix(rpn)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrNotFinite
	}
	return value, nil
}

func tokenize(expr string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			seenDot := false
			for j < len(expr) {
				if expr[j] == '.' {
					if seenDot {
						return nil, ErrUnparseable
					}
					seenDot = true
					j++
					continue
				}
				if expr[j] < '0' || expr[j] > '9' {
					break
				}
				j++
			}
			value, err := strconv.ParseFloat(expr[i:j], 64)
			if err != nil {
				return nil, ErrUnparseable
			}
			tokens = append(tokens, token{kind: tokenNumber, value: value})
			i = j
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '%':
			if c == '-' && unaryPosition(tokens) {
				// A negation reads as "0 - operand": push the zero and let
				// the parenthesised precedence handle the rest.
				tokens = append(tokens, token{kind: tokenLeftParen})
				tokens = append(tokens, token{kind: tokenNumber, value: 0})
				tokens = append(tokens, token{kind: tokenOperator, op: '-'})
				end, err := operandEnd(expr, i+1)
				if err != nil {
					return nil, err
				}
				inner, err := tokenize(expr[i+1 : end])
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, inner...)
				tokens = append(tokens, token{kind: tokenRightParen})
				i = end
				continue
			}
			tokens = append(tokens, token{kind: tokenOperator, op: c})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLeftParen})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRightParen})
			i++
		default:
			return nil, ErrUnparseable
		}
	}
	return tokens, nil
}

// unaryPosition reports whether a minus at the current point negates the
// next operand rather than subtracting.
func unaryPosition(tokens []token) bool {
	if len(tokens) == 0 {
		return true
	}
	last := tokens[len(tokens)-1]
	return last.kind == tokenOperator || last.kind == tokenLeftParen
}

// operandEnd finds the end of the operand starting at position start: a
// number, or a full parenthesised group.
func operandEnd(expr string, start int) (int, error) {
	i := start
	for i < len(expr) && (expr[i] == ' ' || expr[i] == '\t') {
		i++
	}
	if i >= len(expr) {
		return 0, ErrUnparseable
	}
	if expr[i] == '(' {
		depth := 0
		for ; i < len(expr); i++ {
			if expr[i] == '(' {
				depth++
			}
			if expr[i] == ')' {
				depth--
				if depth == 0 {
					return i + 1, nil
				}
			}
		}
		return 0, ErrUnparseable
	}
	if expr[i] == '-' {
		// "--5" and friends read as noise, not arithmetic.
		return 0, ErrUnparseable
	}
	for i < len(expr) && (expr[i] >= '0' && expr[i] <= '9' || expr[i] == '.') {
		i++
	}
	if i == start {
		return 0, ErrUnparseable
	}
	return i, nil
}

func precedence(op byte) int {
	switch op {
	case '*', '/', '%':
		return 2
	default:
		return 1
	}
}

func toPostfix(tokens []token) ([]token, error) {
	var output []token
	var stack []token
	for _, t := range tokens {
		switch t.kind {
		case tokenNumber:
			output = append(output, t)
		case tokenOperator:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind != tokenOperator || precedence(top.op) < precedence(t.op) {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, t)
		case tokenLeftParen:
			stack = append(stack, t)
		case tokenRightParen:
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.kind == tokenLeftParen {
					matched = true
					break
				}
				output = append(output, top)
			}
			if !matched {
				return nil, ErrUnparseable
			}
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.kind == tokenLeftParen {
			return nil, ErrUnparseable
		}
		output = append(output, top)
	}
	return output, nil
}

func evalPostfix(rpn []token) (float64, error) {
	var stack []float64
	for _, t := range rpn {
		if t.kind == tokenNumber {
			stack = append(stack, t.value)
			continue
		}
		if len(stack) < 2 {
			return 0, ErrUnparseable
		}
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		var v float64
		switch t.op {
		case '+':
			v = a + b
		case '-':
			v = a - b
		case '*':
			v = a * b
		case '/':
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			v = a / b
		case '%':
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			v = math.Mod(a, b)
		}
		stack = append(stack, v)
	}
	if len(stack) != 1 {
		return 0, ErrUnparseable
	}
	return stack[0], nil
}

// FormatAmount renders a value the way the bot talks about money and
// results, always with two decimal places.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Normalize collapses the whitespace inside an expression for echoing back
// in responses.
func Normalize(expr string) string {
	return strings.Join(strings.Fields(expr), " ")
}

package exec

import (
	"github.com/sirupsen/logrus"

	"avm/errs"
	"avm/lang"
	"avm/program"
	"avm/value"
)

// Evaluator answers the second of the module's two questions: given a
// well-formed program, a function name and a list of input values, what
// are the function's outputs. It is deterministic and purely functional
// over its inputs; all mutable state lives in the per-call Stack.
type Evaluator struct {
	program *program.Program
	log     *logrus.Entry
}

// NewEvaluator constructs an evaluator over an immutable program.
func NewEvaluator(p *program.Program) *Evaluator {
	return &Evaluator{
		program: p,
		log:     logrus.WithField("component", "evaluator"),
	}
}

// Evaluate runs the named function over inputs and returns its
// mode-stamped outputs in declaration order.
func (e *Evaluator) Evaluate(name lang.Identifier, inputs []value.RegisterValue) ([]value.Value, error) {
	fn, ok := e.program.Function(name)
	if !ok {
		return nil, errs.NewNameError(string(name), "function not declared")
	}
	if len(inputs) != len(fn.Inputs) {
		return nil, errs.NewArityError(string(name)+" inputs", len(fn.Inputs), len(inputs))
	}
	rt, ok := e.program.RegisterTypes(name)
	if !ok {
		// A well-formed program always has this table; its absence means
		// the program was not built through the builder.
		return nil, errs.NewEvaluationError("no register table for function " + string(name))
	}

	e.log.WithFields(logrus.Fields{
		"function": string(name),
		"inputs":   len(inputs),
	}).Debug("evaluating")

	stack, err := NewStack(e.program, rt, inputs)
	if err != nil {
		return nil, err
	}
	if err := fn.Evaluate(stack); err != nil {
		return nil, err
	}

	outputs := make([]value.Value, 0, len(fn.Outputs))
	for _, out := range fn.Outputs {
		rv, err := stack.LoadRegister(out.Register)
		if err != nil {
			return nil, err
		}
		if rv.IsRecord() != out.Type.IsRecord() {
			return nil, errs.NewEvaluationError(
				"output " + out.Register.String() + " does not match declared type " + out.Type.String())
		}
		v := value.FromRegisterValue(rv, out.Type)
		if err := stack.MatchesValue(v, out.Type); err != nil {
			return nil, err
		}
		outputs = append(outputs, v)
	}
	return outputs, nil
}

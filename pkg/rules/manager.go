package rules

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// Variáveis disponíveis nas expressões.
const (
	// VarRecord é o registro extraído de um resultado de busca.
	VarRecord = "record"
	// VarQuery são os parâmetros da busca que originou o registro.
	VarQuery = "query"
)

// RuleManager gerencia a compilação e avaliação de expressões CEL.
// Programas compilados ficam em cache por expressão.
type RuleManager struct {
	env      *cel.Env
	programs sync.Map // string -> cel.Program
}

// NewRuleManager inicializa o ambiente CEL com as variáveis padrão esperadas.
func NewRuleManager() (*RuleManager, error) {
	env, err := cel.NewEnv(
		cel.StdLib(),
		cel.Variable(VarRecord, cel.DynType),
		cel.Variable(VarQuery, cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("erro fatal CEL init: %w", err)
	}

	return &RuleManager{env: env}, nil
}

// Check compila a expressão e confirma que ela produz um booleano.
// Usado na montagem de filtros para falhar antes de qualquer chamada à API.
func (rm *RuleManager) Check(expression string) error {
	ast, issues := rm.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("erro compilação CEL '%s': %w", expression, issues.Err())
	}
	if t := ast.OutputType(); !t.IsExactType(cel.BoolType) && !t.IsExactType(cel.DynType) {
		return fmt.Errorf("expressão CEL '%s' deve retornar bool, retorna %s", expression, t)
	}
	_, err := rm.compile(expression)
	return err
}

// EvaluateBool processa regras de filtro (deve retornar true/false).
func (rm *RuleManager) EvaluateBool(expression string, ctx map[string]interface{}) (bool, error) {
	if expression == "" {
		return true, nil // Expressão vazia = aprova
	}

	out, err := rm.eval(expression, ctx)
	if err != nil {
		return false, err
	}

	if val, ok := out.(bool); ok {
		return val, nil
	}
	return false, fmt.Errorf("resultado não é booleano")
}

// EvaluateValue avalia uma expressão e retorna o valor dinâmico.
func (rm *RuleManager) EvaluateValue(expression string, ctx map[string]interface{}) (interface{}, error) {
	if expression == "" {
		return nil, nil
	}
	return rm.eval(expression, ctx)
}

func (rm *RuleManager) eval(expression string, ctx map[string]interface{}) (interface{}, error) {
	prg, err := rm.compile(expression)
	if err != nil {
		return nil, err
	}

	out, _, err := prg.Eval(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro execução CEL: %w", err)
	}
	return out.Value(), nil
}

// compile é um helper interno para compilar a string em um programa executável.
func (rm *RuleManager) compile(expr string) (cel.Program, error) {
	if prg, ok := rm.programs.Load(expr); ok {
		return prg.(cel.Program), nil
	}

	ast, issues := rm.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("erro de compilação CEL: %w", issues.Err())
	}

	prg, err := rm.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar programa CEL: %w", err)
	}
	rm.programs.Store(expr, prg)
	return prg, nil
}

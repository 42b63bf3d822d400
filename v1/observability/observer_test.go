package observability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, "success", OperationContext{}.Status())
	assert.Equal(t, "error", OperationContext{Error: errors.New("x")}.Status())
}

func TestMultiSkipsNil(t *testing.T) {
	var got []string
	a := ObserverFunc(func(ctx OperationContext) { got = append(got, "a:"+ctx.Operation) })
	b := ObserverFunc(func(ctx OperationContext) { got = append(got, "b:"+ctx.Operation) })

	Multi(a, nil, b).ObserveOperation(OperationContext{Operation: "compile"})

	assert.Equal(t, []string{"a:compile", "b:compile"}, got)
}

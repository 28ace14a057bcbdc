package main

import (
	"context"
	"fmt"

	syntree "github.com/alnah/go-syntree"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input syntree.Input) (*syntree.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*syntree.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
}

// poolAdapter adapts *syntree.ConverterPool to Pool.
type poolAdapter struct {
	pool *syntree.ConverterPool
}

// Compile-time interface implementation check.
var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	c, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Release panics when given a converter the pool did not lend
// (programmer error).
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*syntree.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

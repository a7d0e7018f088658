//go:build !linux

package mpris

type Adapter struct{}

func New(Options) (*Adapter, error) { return &Adapter{}, nil }

func (*Adapter) Close() error { return nil }

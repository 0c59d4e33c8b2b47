//go:build !linux

package render

import "context"

func (m *FBMirror) Run(ctx context.Context) error {
	return ErrMirrorUnsupported
}

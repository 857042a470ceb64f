package service

import (
	"context"
)

type fakeChat struct {
	reply    string
	err      error
	requests []ChatRequest
}

func (f *fakeChat) Complete(_ context.Context, req ChatRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

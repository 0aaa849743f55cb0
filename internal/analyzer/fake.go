package analyzer

import (
	"context"

	"github.com/danieljhkim/pltsync/internal/fileset"
)

// FakeBackend implements Backend in memory for testing. PLTs are modeled as
// file sets keyed by path; each Run mutates them the way the real backend
// mutates PLT files on disk and records the request for assertions.
type FakeBackend struct {
	// Version is returned by OTPVersion.
	Version string

	// PLTs maps PLT path to its current file set. A missing key means the
	// PLT does not exist.
	PLTs map[string]fileset.Set

	// ReadErrors maps PLT paths to read errors returned by PLTFiles.
	ReadErrors map[string]error

	// Warnings maps a phase to the raw diagnostics each Run of that phase
	// emits.
	Warnings map[Phase][]string

	// RunErr, when set, is returned by every Run call.
	RunErr error

	// Requests records every Run request in order.
	Requests []RunRequest
}

// NewFakeBackend creates a FakeBackend with no PLTs.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		Version: "26",
		PLTs:    make(map[string]fileset.Set),
	}
}

// OTPVersion returns the configured version.
func (b *FakeBackend) OTPVersion(ctx context.Context) (string, error) {
	return b.Version, nil
}

// PLTFiles returns the fake PLT's file set.
func (b *FakeBackend) PLTFiles(ctx context.Context, pltPath string) (fileset.Set, error) {
	if err, ok := b.ReadErrors[pltPath]; ok {
		return nil, err
	}
	files, ok := b.PLTs[pltPath]
	if !ok {
		return nil, ErrNoPLT
	}
	return files, nil
}

// Run records the request and applies the phase's effect to the fake PLT.
func (b *FakeBackend) Run(ctx context.Context, req RunRequest) ([]string, error) {
	b.Requests = append(b.Requests, req)
	if b.RunErr != nil {
		return nil, b.RunErr
	}

	switch req.Phase {
	case PhaseBuild:
		b.PLTs[req.OutputPLT] = fileset.New(req.Files...)
	case PhaseAdd:
		plt := b.pltFor(req)
		for _, f := range req.Files {
			plt.Add(f)
		}
		b.PLTs[req.OutputPLT] = plt
	case PhaseRemove:
		plt := b.pltFor(req)
		out := make(fileset.Set)
		removed := fileset.New(req.Files...)
		for f := range plt {
			if !removed.Contains(f) {
				out.Add(f)
			}
		}
		b.PLTs[req.OutputPLT] = out
	case PhaseCheck, PhaseSuccTypings:
		// No PLT mutation.
	}

	return b.Warnings[req.Phase], nil
}

func (b *FakeBackend) pltFor(req RunRequest) fileset.Set {
	out := make(fileset.Set)
	if existing, ok := b.PLTs[req.InitPLT]; ok {
		out.AddAll(existing)
	}
	return out
}

// RequestsFor returns the recorded requests for one phase.
func (b *FakeBackend) RequestsFor(phase Phase) []RunRequest {
	var out []RunRequest
	for _, req := range b.Requests {
		if req.Phase == phase {
			out = append(out, req)
		}
	}
	return out
}

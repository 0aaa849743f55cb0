package analyzer

// buildArgs assembles the dialyzer argument list for one analysis call.
//
// Every call runs quiet (so stdout carries only diagnostics) and with the
// backend's own PLT consistency re-check disabled: the caller already knows
// the PLT's content from plt_info, re-checking it inside every phase would
// only repeat work.
func buildArgs(req RunRequest) []string {
	args := []string{"--quiet", "--no_check_plt"}

	switch req.Phase {
	case PhaseBuild:
		args = append(args, "--build_plt", "--output_plt", req.OutputPLT)
	case PhaseAdd:
		args = append(args, "--add_to_plt", "--plt", req.InitPLT, "--output_plt", req.OutputPLT)
	case PhaseRemove:
		args = append(args, "--remove_from_plt", "--plt", req.InitPLT, "--output_plt", req.OutputPLT)
	case PhaseCheck:
		args = append(args, "--check_plt", "--plt", req.InitPLT, "--output_plt", req.OutputPLT)
	case PhaseSuccTypings:
		args = append(args, "--plt", req.InitPLT)
	}

	for _, flag := range req.WarningFlags {
		args = append(args, "-W"+flag)
	}

	for _, dir := range req.CodePath {
		args = append(args, "-pa", dir)
	}

	args = append(args, req.Files...)
	return args
}

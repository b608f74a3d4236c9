package main

import (
	"strings"
	"testing"

	"github.com/wb4/sgcreate/internal/sgerrors"
)

func TestParseArgsGluedAndSeparateForms(t *testing.T) {
	opts, err := parseArgs([]string{"-i", "depth.png", "-ooutput.png", "-f30mm", "-n", "20mm", "-pN"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if opts.inputPath != "depth.png" || opts.outputPath != "output.png" {
		t.Fatalf("unexpected input/output paths: %+v", opts)
	}
	if !opts.maxSepSet || opts.maxSep.Millimeters() != 30 {
		t.Fatalf("expected -f30mm to parse to 30mm, got %+v", opts.maxSep)
	}
	if !opts.minSepSet || opts.minSep.Millimeters() != 20 {
		t.Fatalf("expected -n 20mm to parse to 20mm, got %+v", opts.minSep)
	}
	if !opts.preserveTex || !opts.addNoise {
		t.Fatalf("expected combined -pN to set both booleans, got %+v", opts)
	}
}

func TestParseArgsRejectsUnknownFlag(t *testing.T) {
	if _, err := parseArgs([]string{"-i", "a", "-z"}); err == nil {
		t.Fatal("expected an error for an unrecognized flag")
	} else if !sgerrors.Is(err, sgerrors.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestValidateSeparationsRejectsMinGreaterThanMax(t *testing.T) {
	// "-f 30mm -n 40mm" must fail with a message indicating min >= max.
	err := validateSeparations(40, 30, 62)
	if err == nil {
		t.Fatal("expected an error when min separation exceeds max separation")
	}
	if !sgerrors.Is(err, sgerrors.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	if !strings.Contains(err.Error(), "minimum separation") {
		t.Fatalf("expected message to mention minimum separation, got %q", err.Error())
	}
}

func TestValidateSeparationsRejectsMaxAtOrAboveEyeSeparation(t *testing.T) {
	if err := validateSeparations(10, 62, 62); err == nil {
		t.Fatal("expected an error when max separation reaches eye separation")
	}
}

func TestValidateSeparationsAcceptsWellFormedRange(t *testing.T) {
	if err := validateSeparations(20, 30, 62); err != nil {
		t.Fatalf("expected a well-formed separation range to validate, got %v", err)
	}
}

func TestEdgeEchoOffsetFloorsAndFloors1Minimum(t *testing.T) {
	if got := edgeEchoOffset(20); got != 2 {
		t.Fatalf("expected floor(0.1*20)=2, got %d", got)
	}
	if got := edgeEchoOffset(1); got != 1 {
		t.Fatalf("expected a minimum edge echo offset of 1, got %d", got)
	}
}

// worker-apply submits a worker registration from the command line. It
// drives the same step-gated flow the website uses: answers are checked
// one step at a time, the two documents are attached, and a failed
// attempt is queued locally so -resubmit can replay it later.
//
// Usage:
//
//	worker-apply -answers answers.json -id aadhar.pdf -photo photo.jpg
//	worker-apply -resubmit
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"merididi/internal/regclient"
)

func main() {
	var (
		server   = flag.String("server", "http://localhost:8080", "base URL of the submission API")
		answers  = flag.String("answers", "", "path to a JSON file with the registration answers")
		idDoc    = flag.String("id", "", "path to the ID document to upload")
		photo    = flag.String("photo", "", "path to the applicant photo to upload")
		cacheDir = flag.String("cache", defaultCacheDir(), "directory for cached submissions")
		resubmit = flag.Bool("resubmit", false, "replay the last failed submission instead of starting fresh")
	)
	flag.Parse()

	if err := run(*server, *answers, *idDoc, *photo, *cacheDir, *resubmit); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(server, answersPath, idDocPath, photoPath, cacheDir string, resubmit bool) error {
	cache, err := regclient.NewFileCache(cacheDir)
	if err != nil {
		return err
	}
	form := regclient.New(server, cache)
	ctx := context.Background()

	if resubmit {
		receipt, err := form.Resubmit(ctx)
		if err != nil {
			if errors.Is(err, regclient.ErrNoPendingSubmission) {
				return errors.New("nothing to resubmit")
			}
			return describeFailure(err)
		}
		fmt.Println("Registration submitted. Reference:", receipt.Reference)
		return nil
	}

	if answersPath == "" || idDocPath == "" || photoPath == "" {
		return errors.New("-answers, -id and -photo are required (or use -resubmit)")
	}

	raw, err := os.ReadFile(answersPath)
	if err != nil {
		return fmt.Errorf("read answers: %w", err)
	}
	if err := json.Unmarshal(raw, &form.Answers); err != nil {
		return fmt.Errorf("parse answers: %w", err)
	}

	// Walk the personal and professional steps the way the form does, so
	// bad answers fail fast with field-level messages before any upload.
	for form.Step() < regclient.StepDocuments {
		step := form.Step()
		if fieldErrs := form.Next(); len(fieldErrs) > 0 {
			fmt.Fprintf(os.Stderr, "fix the %s step:\n", step)
			for _, fe := range fieldErrs {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", fe.Field, fe.Message)
			}
			return errors.New("answers did not validate")
		}
	}

	form.AttachIDDocument(idDocPath)
	form.AttachPhoto(photoPath)

	receipt, err := form.Submit(ctx)
	if err != nil {
		return describeFailure(err)
	}
	fmt.Println("Registration submitted. Reference:", receipt.Reference)
	return nil
}

// describeFailure unwraps a classified submission failure into its
// user-facing message, including any per-field errors from the server.
func describeFailure(err error) error {
	var subErr *regclient.SubmitError
	if !errors.As(err, &subErr) {
		return err
	}
	for _, fe := range subErr.Fields {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", fe.Field, fe.Message)
	}
	if subErr.Kind == regclient.FailureUnreachable || subErr.Kind == regclient.FailureTimeout {
		fmt.Fprintln(os.Stderr, "run again with -resubmit once the server is reachable")
	}
	return errors.New(subErr.Message)
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".merididi"
	}
	return filepath.Join(base, "merididi")
}

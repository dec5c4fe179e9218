package recon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/camerahub/tagger/internal/exif"
	"github.com/camerahub/tagger/internal/logging"
	"github.com/camerahub/tagger/internal/prompt"
)

// Catalog is the remote record service the driver reconciles against.
type Catalog interface {
	ResolveNegative(ctx context.Context, film, frame string) (string, error)
	CreateScan(ctx context.Context, negative, filename string, date time.Time) (string, error)
	GetScan(ctx context.Context, scanID string) (map[string]any, error)
}

// Codec reads and writes the embedded tags of an image file.
type Codec interface {
	ReadTags(path string) (exif.Groups, error)
	WriteTags(path string, g exif.Groups) error
}

// Prompter asks the operator questions when the driver cannot decide on
// its own.
type Prompter interface {
	YesNo(question string) (bool, error)
	FilmFrame(filename string) (film, frame string, err error)
}

// Outcome is the terminal state of one file's reconciliation.
type Outcome string

const (
	// OutcomeSkipped means the file could not be identified or its
	// scan record could not be resolved or created.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFetchFailed means the scan record retrieval failed.
	OutcomeFetchFailed Outcome = "fetch-failed"
	// OutcomeUnchanged means the embedded tags already match the catalog.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeDeclined means the operator rejected the write, or dry-run
	// mode suppressed it.
	OutcomeDeclined Outcome = "declined"
	// OutcomeFailed means the final tag write failed.
	OutcomeFailed Outcome = "failed"
	// OutcomeWritten means the merged tags were persisted.
	OutcomeWritten Outcome = "written"
)

// Options control the driver's interactive behavior.
type Options struct {
	// Auto skips the interactive film/frame prompt; files whose names
	// cannot be guessed are skipped instead.
	Auto bool
	// AssumeYes writes every non-empty diff without confirmation.
	AssumeYes bool
	// DryRun reports diffs but never writes.
	DryRun bool
}

// Driver reconciles one file at a time against the catalog. Files are
// fully processed in sequence; the only shared state between files is the
// injected collaborators.
type Driver struct {
	catalog Catalog
	codec   Codec
	prompt  Prompter
	opts    Options
	log     logging.Logger
	out     io.Writer
}

// NewDriver wires a driver from its collaborators.
func NewDriver(catalog Catalog, codec Codec, prompter Prompter, opts Options, log logging.Logger, out io.Writer) *Driver {
	if log == nil {
		log = logging.Nop()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Driver{catalog: catalog, codec: codec, prompt: prompter, opts: opts, log: log, out: out}
}

// Process runs one file through the full state machine. All returned
// errors are per-file: the caller reports them and moves on.
func (d *Driver) Process(ctx context.Context, path string) (Outcome, error) {
	existing, err := d.codec.ReadTags(path)
	if err != nil {
		return OutcomeSkipped, failure(FailureCodec, path, err)
	}

	scanID, err := d.identify(ctx, path, existing)
	if err != nil {
		return OutcomeSkipped, err
	}

	record, err := d.catalog.GetScan(ctx, scanID)
	if err != nil {
		return OutcomeFetchFailed, failure(FailureFetch, path, err)
	}
	d.log.Debug("fetched scan record", "scan", scanID, "record", spew.Sdump(record))

	desired := exif.Classify(MapToTags(Flatten(record)))

	diffIFD := Diff(existing.IFD, desired.IFD)
	diffExif := Diff(existing.Exif, desired.Exif)
	diffGPS := Diff(existing.GPS, desired.GPS)
	if len(diffIFD) == 0 && len(diffExif) == 0 && len(diffGPS) == 0 {
		d.log.Info("no changes needed", "file", path)
		return OutcomeUnchanged, nil
	}

	d.presentDiff(path, diffIFD, diffExif, diffGPS, desired)

	if d.opts.DryRun {
		d.log.Info("dry run, not writing", "file", path)
		return OutcomeDeclined, nil
	}
	if !d.opts.AssumeYes {
		ok, err := d.prompt.YesNo(fmt.Sprintf("Write this metadata to %s?", path))
		if err != nil {
			return OutcomeDeclined, failure(FailureDeclined, path, err)
		}
		if !ok {
			return OutcomeDeclined, failure(FailureDeclined, path, errors.New("operator declined"))
		}
	}

	merged := exif.Groups{
		IFD:  Merge(existing.IFD, diffIFD, desired.IFD),
		Exif: Merge(existing.Exif, diffExif, desired.Exif),
		GPS:  Merge(existing.GPS, diffGPS, desired.GPS),
	}
	if err := d.codec.WriteTags(path, merged); err != nil {
		return OutcomeFailed, failure(FailureCodec, path, err)
	}
	d.log.Info("tags written", "file", path)
	return OutcomeWritten, nil
}

// identify resolves a file to a scan id. A valid embedded unique id wins;
// otherwise the film/frame pair is guessed from the filename or prompted
// for, resolved to a negative, and a fresh scan record is created.
func (d *Driver) identify(ctx context.Context, path string, existing exif.Groups) (string, error) {
	if id, ok := existing.Exif["image_unique_id"].(string); ok && isCanonicalUUID(id) {
		d.log.Info("file already carries a scan id", "file", path, "scan", id)
		return id, nil
	}

	base := filepath.Base(path)
	film, frame, guessed := prompt.GuessFrame(base)
	if guessed {
		d.log.Info("deduced film and frame from filename", "file", path, "film", film, "frame", frame)
	} else {
		if d.opts.Auto {
			return "", failure(FailureIdentification, path, fmt.Errorf("%s does not match film-frame notation", base))
		}
		var err error
		film, frame, err = d.prompt.FilmFrame(base)
		if err != nil {
			return "", failure(FailureIdentification, path, err)
		}
	}

	negative, err := d.catalog.ResolveNegative(ctx, film, frame)
	if err != nil {
		return "", failure(FailureLookup, path, err)
	}
	d.log.Info("matched negative", "file", path, "negative", negative)

	scanID, err := d.catalog.CreateScan(ctx, negative, base, time.Now())
	if err != nil {
		return "", failure(FailureCreation, path, err)
	}
	d.log.Info("created scan record", "file", path, "scan", scanID)
	return scanID, nil
}

// presentDiff renders a non-empty diff for the operator. Pairs belonging
// to the desired set are the values that would be written; pairs from the
// current side are shown for context and never removed.
func (d *Driver) presentDiff(path string, ifd, exifd, gps []Pair, desired exif.Groups) {
	fmt.Fprintf(d.out, "Changes for %s:\n", path)
	d.printGroup("IFD", ifd, desired.IFD)
	d.printGroup("EXIF", exifd, desired.Exif)
	d.printGroup("GPS", gps, desired.GPS)
}

func (d *Driver) printGroup(label string, pairs []Pair, desired exif.TagSet) {
	if len(pairs) == 0 {
		return
	}
	fmt.Fprintf(d.out, "  %s:\n", label)
	for _, p := range pairs {
		rendered := exif.Canonical(p.Value)
		if want, ok := desired[p.Name]; ok && exif.ValueEqual(p.Value, want) {
			fmt.Fprintf(d.out, "    %s %s = %s\n", color.GreenString("+"), p.Name, rendered)
		} else {
			fmt.Fprintf(d.out, "    %s %s = %s\n", color.RedString("-"), p.Name, rendered)
		}
	}
}

// isCanonicalUUID accepts only the canonical string form: the input must
// round-trip through parsing unchanged, which rejects braces, URN prefixes
// and uppercase variants.
func isCanonicalUUID(s string) bool {
	u, err := uuid.Parse(s)
	return err == nil && u.String() == s
}

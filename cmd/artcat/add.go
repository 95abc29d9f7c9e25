// Copyright Whalen Digital Projects, 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/mwhalen/artcat/internal/activity"
	"github.com/mwhalen/artcat/internal/cache"
	"github.com/mwhalen/artcat/internal/catalog"
	"github.com/mwhalen/artcat/internal/export"
	"github.com/mwhalen/artcat/internal/fetch"
	"github.com/mwhalen/artcat/internal/images"
	"github.com/mwhalen/artcat/internal/index"
	"github.com/mwhalen/artcat/internal/linked"
	"github.com/mwhalen/artcat/pkg/types"
)

var addCmd = &cobra.Command{
	Use:   "add <object|object.figure|figure|spreadsheet> <uri> [id] [figure-id]",
	Short: "Scaffold Quire data-file entries from a Linked Art URI",
	Long: `Add fetches a Linked Art record and scaffolds entries in the Quire data
files. The first argument selects what to create:

  object         an objects.yaml entry with its figure
  object.figure  an additional figure for an existing object (id required)
  figure         a standalone figures.yaml entry
  spreadsheet    a flattened CSV dump of the record's fields

Activity URIs expand into their member objects. The optional id argument
sets the entry id; "accession" uses the object's accession number.`,
	Args: cobra.RangeArgs(2, 4),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolP("dry-run", "d", false, "resolve everything without writing data files")
	addCmd.Flags().BoolP("force", "f", false, "refetch cached URIs and overwrite existing entries")
	addCmd.Flags().BoolP("interactive", "i", false, "choose the fields to retrieve interactively")
	addCmd.Flags().StringP("resize", "r", "", "resize figure images: pixels (\"800\") or percentage (\"50%\") of the largest dimension")
	addCmd.Flags().StringP("select", "s", "", "process only activity members matching \"creators: a, b types: x, y\"")
	addCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	addCmd.Flags().Duration("delay", 0, "delay between consecutive record fetches")

	rootCmd.AddCommand(addCmd)
}

// pipeline bundles the stores and clients one add invocation works with.
type pipeline struct {
	cfg     types.PipelineConfig
	store   *cache.Store
	fetcher *cache.Fetcher
	engine  *linked.Engine
	objects *catalog.Objects
	figures *catalog.Figures
	images  *images.Client
	hashes  *images.HashCache
	idx     *index.Index
	dryRun  bool
	force   bool
}

func newPipeline(cmd *cobra.Command) (*pipeline, error) {
	cfg := pipelineConfig(cmd)
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	force, _ := cmd.Flags().GetBool("force")

	if err := catalog.ValidateFieldNames(cfg.Catalog.FieldNames); err != nil {
		return nil, err
	}

	store, err := cache.Load(cfg.Fetch.CachePath)
	if err != nil {
		return nil, err
	}
	objects, err := catalog.LoadObjects(cfg.Catalog.ObjectsPath)
	if err != nil {
		return nil, err
	}
	figures, err := catalog.LoadFigures(cfg.Catalog.FiguresPath)
	if err != nil {
		return nil, err
	}
	hashes, err := images.LoadHashCache(cfg.Images.HashCachePath)
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		cfg:     cfg,
		store:   store,
		objects: objects,
		figures: figures,
		images:  images.NewClient(cfg.Images),
		hashes:  hashes,
		dryRun:  dryRun,
		force:   force,
	}
	p.fetcher = &cache.Fetcher{
		Next:  fetch.NewClient(cfg.Fetch),
		Store: store,
		Force: force,
	}
	p.engine = linked.NewEngine(p.fetcher, cfg.Vocabulary, os.Stdout)

	if !dryRun {
		idx, err := index.Open(cfg.Index)
		if err != nil {
			return nil, err
		}
		p.idx = idx
	}
	return p, nil
}

func (p *pipeline) close() {
	if p.idx != nil {
		p.idx.Close()
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	thing := args[0]
	uri := args[1]
	var id1, id2 string
	if len(args) > 2 {
		id1 = args[2]
	}
	if len(args) > 3 {
		id2 = args[3]
	}

	switch thing {
	case "object", "object.figure", "figure", "spreadsheet":
	default:
		return fmt.Errorf("unknown thing %q: use object, object.figure, figure, or spreadsheet", thing)
	}

	p, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	if p.force {
		fmt.Println("Ignoring cache. If Linked Art for the URI already exists in cache, it will be overwritten.")
	}

	ctx := context.Background()

	doc, err := p.fetcher.Fetch(ctx, uri)
	if err != nil {
		return fetchFailure(err)
	}
	if err := activity.ValidateType(doc); err != nil {
		return fmt.Errorf("failed to process Linked Art: %w", err)
	}

	uris := []string{uri}
	if activity.IsActivity(doc) && thing == "object" {
		fmt.Println("The provided URI is of type 'Activity'. Processing all the objects in the set...")
		uris, err = activity.CollectObjectURIs(ctx, p.fetcher, doc, os.Stdout)
		if err != nil {
			return err
		}
		if sel, _ := cmd.Flags().GetString("select"); sel != "" {
			uris, err = p.selectURIs(ctx, uris, sel)
			if err != nil {
				return err
			}
		}
	}

	fields, err := p.requestedFields(cmd)
	if err != nil {
		return err
	}

	var failed int
	for i, u := range uris {
		if i > 0 && p.cfg.Fetch.RequestDelay > 0 {
			time.Sleep(p.cfg.Fetch.RequestDelay)
		}
		var err error
		switch thing {
		case "object":
			err = p.addObject(ctx, u, id1, fields)
		case "object.figure":
			err = p.addObjectFigure(ctx, u, id1, id2)
		case "figure":
			err = p.addFigure(ctx, u, id1)
		case "spreadsheet":
			err = p.objectSpreadsheet(ctx, u)
		}
		if err != nil {
			if fetch.IsHostNotFound(err) {
				return fetchFailure(err)
			}
			fmt.Fprintf(os.Stderr, "failed  %s: %v\n", u, err)
			failed++
		}
	}

	if err := p.store.Save(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d record(s) failed", failed)
	}
	return nil
}

// fetchFailure distinguishes DNS resolution failure, which aborts the
// whole run, from per-record data problems.
func fetchFailure(err error) error {
	if fetch.IsHostNotFound(err) {
		return fmt.Errorf("failed to fetch Linked Art: could not resolve hostname; check your network connection and try again")
	}
	return fmt.Errorf("failed to fetch Linked Art: %w", err)
}

// requestedFields decides which fields to extract: the configured display
// order, or an interactive selection. Title, accession, credit line, and
// uri are always included.
func (p *pipeline) requestedFields(cmd *cobra.Command) ([]types.FieldKey, error) {
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		return p.interactiveFields(os.Stdin)
	}

	if p.objects.SeedDisplayOrder(p.cfg.Catalog.FieldNames) {
		fmt.Println("There were no fields in object_display_order of objects.yaml. It has been updated with an initial list of fields, including creator, year, accession, and linked art uri. This list can be modified at any time.")
		if !p.dryRun {
			if err := catalog.SaveObjects(p.cfg.Catalog.ObjectsPath, p.objects); err != nil {
				return nil, err
			}
		}
	}

	fields := []types.FieldKey{types.FieldTitle, types.FieldAccession, types.FieldCreditLine}
	for _, column := range p.objects.DisplayOrder {
		key := catalog.FieldKeyFor(p.cfg.Catalog.FieldNames, column)
		if key == "" {
			fmt.Fprintf(os.Stderr, "unknown field %q in object_display_order; skipping\n", column)
			continue
		}
		fields = appendField(fields, key)
	}
	return appendField(fields, types.FieldURI), nil
}

// interactiveFields prompts for a comma-separated field selection. Title
// and uri are excluded from the options since they are always included.
func (p *pipeline) interactiveFields(in *os.File) ([]types.FieldKey, error) {
	fmt.Println("Interactive Linked Art entry building has been initialized.")
	fmt.Println("Choose the Linked Art data fields you would like to retrieve by entering a comma-separated list.")
	fmt.Println("Note: object title and Linked Art URI are always included in the entries and therefore are not present in the list of options.")

	var options []string
	for _, key := range types.AllFields() {
		if key == types.FieldTitle || key == types.FieldURI {
			continue
		}
		options = append(options, catalog.ColumnName(p.cfg.Catalog.FieldNames, key))
	}
	fmt.Println(strings.Join(options, ", "))

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return nil, fmt.Errorf("no field selection provided")
	}

	fields := []types.FieldKey{types.FieldTitle}
	for _, raw := range strings.Split(scanner.Text(), ",") {
		column := strings.ToLower(strings.TrimSpace(raw))
		if column == "" {
			continue
		}
		key := catalog.FieldKeyFor(p.cfg.Catalog.FieldNames, column)
		if key == "" {
			return nil, fmt.Errorf("invalid field %q provided", column)
		}
		fields = appendField(fields, key)
	}
	return appendField(fields, types.FieldURI), nil
}

func appendField(fields []types.FieldKey, key types.FieldKey) []types.FieldKey {
	for _, f := range fields {
		if f == key {
			return fields
		}
	}
	return append(fields, key)
}

// selectURIs narrows an activity's member URIs to those whose creator and
// object type match the selection. Member summaries go through the index
// so the filtering (and later querying) runs over SQL, not re-parsed CSV.
func (p *pipeline) selectURIs(ctx context.Context, uris []string, selection string) ([]string, error) {
	creators, objectTypes := parseSelection(selection)
	if len(creators) == 0 && len(objectTypes) == 0 {
		return nil, fmt.Errorf("empty selection %q: use \"creators: a, b types: x, y\"", selection)
	}
	if p.idx == nil {
		return nil, fmt.Errorf("--select is unavailable with --dry-run")
	}

	summaryFields := []types.FieldKey{
		types.FieldTitle, types.FieldCreator, types.FieldType,
		types.FieldYear, types.FieldAccession,
	}
	for _, u := range uris {
		doc, err := p.fetcher.Fetch(ctx, u)
		if err != nil {
			if fetch.IsHostNotFound(err) {
				return nil, err
			}
			fmt.Fprintf(os.Stderr, "failed  %s: %v\n", u, err)
			continue
		}
		record := p.engine.Extract(ctx, doc, u, summaryFields)
		if err := p.idx.Upsert(ctx, "", record); err != nil {
			return nil, err
		}
	}

	results, err := p.idx.Select(ctx, creators, objectTypes)
	if err != nil {
		return nil, err
	}
	matched := make(map[string]bool, len(results))
	for _, r := range results {
		matched[r.URI] = true
	}

	var selected []string
	for _, u := range uris {
		if matched[u] {
			selected = append(selected, u)
		}
	}
	fmt.Printf("selected %d of %d objects\n", len(selected), len(uris))
	return selected, nil
}

// parseSelection splits "creators: a, b AND types: x, y" into its two
// filter lists. AND/OR separators are equivalent.
func parseSelection(input string) (creators, objectTypes []string) {
	for _, part := range strings.Split(input, " AND ") {
		for _, clause := range strings.Split(part, " OR ") {
			clause = strings.TrimSpace(clause)
			switch {
			case strings.HasPrefix(clause, "creators:"):
				creators = splitList(strings.TrimPrefix(clause, "creators:"))
			case strings.HasPrefix(clause, "types:"):
				objectTypes = splitList(strings.TrimPrefix(clause, "types:"))
			}
		}
	}
	return creators, objectTypes
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// addObject scaffolds one objects.yaml entry with its figure.
func (p *pipeline) addObject(ctx context.Context, uri, id1 string, fields []types.FieldKey) error {
	if p.objects.HasURI(uri) {
		if !p.force {
			fmt.Println("An entry for the URI already exists in the objects.yaml file.")
			return nil
		}
		fmt.Println("An entry for the URI already exists in the objects.yaml file. Overwriting...")
		p.objects.RemoveByURI(uri)
	}

	doc, manifest, err := p.fetchWithManifest(ctx, uri)
	if err != nil {
		return err
	}

	record := p.engine.Extract(ctx, doc, uri, fields)
	title := record.Get(types.FieldTitle)
	accession := record.Get(types.FieldAccession)

	objectID, err := p.objectID(id1, accession)
	if err != nil {
		return err
	}
	if objectID == "" {
		// Explicit id collision already reported.
		return nil
	}

	entry := catalog.Entry{
		"id":    objectID,
		"title": title,
	}
	uriColumn := catalog.ColumnName(p.cfg.Catalog.FieldNames, types.FieldURI)
	for _, column := range p.objects.DisplayOrder {
		key := catalog.FieldKeyFor(p.cfg.Catalog.FieldNames, column)
		if key == "" {
			continue
		}
		if v, ok := record.Fields[key]; ok {
			entry[column] = v
		}
	}
	// The uri always lands in the entry: duplicate prevention depends on it.
	entry[uriColumn] = uri

	fig := p.resolveFigure(ctx, uri, manifest, title, accession, func() (string, error) {
		if id1 == "accession" {
			return accession, nil
		}
		return images.FigureIDForObject(objectID, title, p.figures.FigureIDs()), nil
	})
	if fig != nil {
		catalog.AttachFigure(entry, fig.record.ID)
	}

	if p.dryRun {
		printYAML("objects.yaml entry:", entry)
		if fig != nil {
			printYAML("figures.yaml entry:", fig.record)
		}
		return nil
	}

	p.objects.Insert(entry)
	if err := p.persistFigure(fig); err != nil {
		return err
	}
	if err := catalog.SaveObjects(p.cfg.Catalog.ObjectsPath, p.objects); err != nil {
		return err
	}
	if err := p.idx.Upsert(ctx, objectID, record); err != nil {
		return err
	}

	figureID := ""
	if fig != nil {
		figureID = fig.record.ID
	}
	fmt.Printf("Linked Art added successfully. Object ID: %s. Figure ID: %s.\n", objectID, figureID)
	return nil
}

// objectID picks the entry id: the accession number, an explicit id, or
// the smallest free numeric id. An empty result with nil error means an
// explicit id was already taken.
func (p *pipeline) objectID(id1, accession string) (string, error) {
	switch {
	case id1 == "accession":
		if accession == "" {
			return "", fmt.Errorf("accession number not found")
		}
		return accession, nil
	case id1 != "":
		if p.objects.HasID(id1) {
			fmt.Printf("A record with the id %s already exists.\n", id1)
			return "", nil
		}
		return id1, nil
	default:
		return fmt.Sprint(p.objects.NextID()), nil
	}
}

// addObjectFigure attaches an additional figure to an existing object.
func (p *pipeline) addObjectFigure(ctx context.Context, uri, id1, id2 string) error {
	if id1 == "" {
		return fmt.Errorf("object ID must be provided")
	}
	entry, ok := p.objects.FindByID(id1)
	if !ok {
		return fmt.Errorf("object with ID %s not found in objects.yaml", id1)
	}

	doc, manifest, err := p.fetchWithManifest(ctx, uri)
	if err != nil {
		return err
	}
	title := p.engine.Title(doc)
	accession := p.engine.Accession(doc)

	fig := p.resolveFigure(ctx, uri, manifest, title, accession, func() (string, error) {
		switch {
		case id2 == "accession":
			if accession == "" {
				return "", fmt.Errorf("accession number not found")
			}
			return "cat-" + accession, nil
		case id2 != "":
			return "cat-" + id2, nil
		default:
			return images.SuffixedFigureID(id1, p.figures.FigureIDs()), nil
		}
	})
	if fig == nil {
		return fmt.Errorf("no image found for object ID %s", id1)
	}
	catalog.AttachFigure(entry, fig.record.ID)

	if p.dryRun {
		printYAML("objects.yaml entry:", entry)
		printYAML("figures.yaml entry:", fig.record)
		return nil
	}

	if err := p.persistFigure(fig); err != nil {
		return err
	}
	if err := catalog.SaveObjects(p.cfg.Catalog.ObjectsPath, p.objects); err != nil {
		return err
	}
	fmt.Printf("Figure added to object in objects.yaml successfully. Object ID: %s. Figure ID: %s.\n", id1, fig.record.ID)
	return nil
}

// addFigure scaffolds a standalone figures.yaml entry.
func (p *pipeline) addFigure(ctx context.Context, uri, id1 string) error {
	doc, manifest, err := p.fetchWithManifest(ctx, uri)
	if err != nil {
		return err
	}
	title := p.engine.Title(doc)
	accession := p.engine.Accession(doc)

	fig := p.resolveFigure(ctx, uri, manifest, title, accession, func() (string, error) {
		switch {
		case id1 == "accession":
			if accession == "" {
				return "", fmt.Errorf("accession number not found")
			}
			return accession, nil
		case id1 != "":
			if p.figures.HasFigureID(id1) {
				return "", fmt.Errorf("a record with the id %s already exists", id1)
			}
			return id1, nil
		default:
			return fmt.Sprint(p.figures.NextFigureID()), nil
		}
	})
	if fig == nil {
		return fmt.Errorf("no image found for %s", uri)
	}

	if p.dryRun {
		printYAML("figures.yaml entry:", fig.record)
		return nil
	}

	if err := p.persistFigure(fig); err != nil {
		return err
	}
	fmt.Printf("Figure added to figures.yaml successfully. Figure ID: %s.\n", fig.record.ID)
	return nil
}

// objectSpreadsheet writes the flattened Field,Content CSV for one record.
func (p *pipeline) objectSpreadsheet(ctx context.Context, uri string) error {
	doc, err := p.fetcher.Fetch(ctx, uri)
	if err != nil {
		return err
	}

	title := p.engine.Title(doc)
	if title == "" {
		fmt.Println("Failed to fetch object title.")
	}
	fileName := export.ObjectFileName(title)
	if _, err := os.Stat(fileName); err == nil {
		return fmt.Errorf("%s already exists", fileName)
	}

	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()

	resolve := func(ctx context.Context, u string) (string, error) {
		d, err := p.fetcher.Fetch(ctx, u)
		if err != nil {
			return "", err
		}
		return p.engine.PrimaryName(d), nil
	}
	if err := export.WriteObjectCSV(ctx, f, doc, resolve); err != nil {
		return err
	}
	fmt.Println("CSV file generated successfully.")

	recordType := doc.Type()
	fmt.Printf("For help interpreting the fields, see Linked Art documentation for %s here: %s\n",
		recordType, export.DocumentationURL(recordType))
	return nil
}

// fetchWithManifest dereferences the object and locates its IIIF
// manifest, recording both in the document cache.
func (p *pipeline) fetchWithManifest(ctx context.Context, uri string) (linked.Document, linked.Document, error) {
	doc, err := p.fetcher.Fetch(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	manifest := p.engine.FindManifest(ctx, doc)

	entry, _ := p.store.Get(uri)
	entry.Object = doc
	entry.Manifest = manifest
	p.store.Put(uri, entry)
	return doc, manifest, nil
}

// figureResult is a downloaded figure pending persistence.
type figureResult struct {
	record   types.FigureRecord
	data     []byte
	hash     string
	existing bool // already listed in figures.yaml
	reused   bool // hash cache hit; image already on disk
}

// resolveFigure runs the image pipeline for one record: locate the image
// in the manifest, apply the optional resize, download, and settle on a
// figure id. A nil result means no usable image.
func (p *pipeline) resolveFigure(ctx context.Context, uri string, manifest linked.Document, title, accession string, newID func() (string, error)) *figureResult {
	imageURI := linked.LocateImage(manifest)
	if imageURI == "" {
		fmt.Println("Image URI not found in IIIF manifest.")
		return nil
	}

	if p.cfg.Images.Resize != "" {
		resized, err := linked.ResizeURI(manifest, imageURI, p.cfg.Images.Resize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error occurred while resizing image: %v\n", err)
		} else {
			imageURI = resized
		}
	}

	data, hash, err := p.images.Download(ctx, imageURI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error fetching image: %v\n", err)
		return nil
	}

	result := &figureResult{data: data, hash: hash}

	var figureID string
	if cachedID, ok := p.hashes.Get(hash); ok {
		figureID = cachedID
		result.reused = true
		fmt.Printf("Figure already in figures folder. Using file name '%s' as figure ID.\n", cachedID)
	} else if existing, ok := p.figures.FindByURI(uri); ok {
		figureID = existing.ID
		result.existing = true
		fmt.Println("Figure with corresponding URI found in figures.yaml. Using existing figure ID.")
	} else {
		fmt.Println("Downloading image to project's figures folder...")
		figureID, err = newID()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return nil
		}
	}

	result.record = types.FigureRecord{
		ID:        figureID,
		Src:       "figures/" + figureID + ".jpg",
		Caption:   title + ".",
		Accession: accession,
		URI:       uri,
	}
	return result
}

// persistFigure writes the image file and updates figures.yaml and the
// hash cache. Reused figures skip the image write.
func (p *pipeline) persistFigure(fig *figureResult) error {
	if fig == nil {
		return nil
	}

	if !fig.reused {
		if _, err := p.images.WriteFigure(fig.record.ID, fig.data); err != nil {
			return err
		}
	}
	p.hashes.Put(fig.hash, fig.record.ID)
	if err := p.hashes.Save(); err != nil {
		return err
	}

	if !fig.existing && !p.figures.HasFigureID(fig.record.ID) {
		p.figures.List = append(p.figures.List, fig.record)
	}
	return catalog.SaveFigures(p.cfg.Catalog.FiguresPath, p.figures)
}

func printYAML(header string, v any) {
	fmt.Println(header)
	data, err := yaml.Marshal(v)
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Print(string(data))
}

// Copyright Whalen Digital Projects, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhalen/artcat/internal/activity"
	"github.com/mwhalen/artcat/internal/export"
	"github.com/mwhalen/artcat/internal/fetch"
	"github.com/mwhalen/artcat/internal/linked"
	"github.com/mwhalen/artcat/pkg/types"
)

var spreadsheetCmd = &cobra.Command{
	Use:   "spreadsheet <activity-uri>",
	Short: "Summarize an activity's member objects as a CSV spreadsheet",
	Long: `Spreadsheet expands a Linked Art activity into its member objects and
writes a CSV with one row per object: URI, title, creator, object type,
and image URI. The file is named after the activity's title.

Member summaries are also recorded in the catalog index, so the unique
creators and object types printed afterwards can guide an add --select.`,
	Args: cobra.ExactArgs(1),
	RunE: runSpreadsheet,
}

func init() {
	spreadsheetCmd.Flags().BoolP("force", "f", false, "refetch cached URIs")
	spreadsheetCmd.Flags().StringP("resize", "r", "", "resize image URIs: pixels (\"800\") or percentage (\"50%\") of the largest dimension")
	spreadsheetCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	spreadsheetCmd.Flags().Duration("delay", 0, "delay between consecutive record fetches")

	rootCmd.AddCommand(spreadsheetCmd)
}

func runSpreadsheet(cmd *cobra.Command, args []string) error {
	uri := args[0]

	p, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	ctx := context.Background()

	doc, err := p.fetcher.Fetch(ctx, uri)
	if err != nil {
		return fetchFailure(err)
	}
	if !activity.IsActivity(doc) {
		return fmt.Errorf("record type %q is not an Activity", doc.Type())
	}

	activityTitle := p.engine.PrimaryName(doc)
	uris, err := activity.CollectObjectURIs(ctx, p.fetcher, doc, os.Stdout)
	if err != nil {
		return err
	}

	rows := make([]export.ActivityRow, 0, len(uris))
	for i, u := range uris {
		if i > 0 && p.cfg.Fetch.RequestDelay > 0 {
			time.Sleep(p.cfg.Fetch.RequestDelay)
		}
		fmt.Printf("Retrieving Linked Art... %d/%d\n", i+1, len(uris))

		objectDoc, err := p.fetcher.Fetch(ctx, u)
		if err != nil {
			if fetch.IsHostNotFound(err) {
				return fetchFailure(err)
			}
			fmt.Fprintf(os.Stderr, "failed  %s: %v\n", u, err)
			rows = append(rows, export.ActivityRow{URI: u})
			continue
		}

		record := p.engine.Extract(ctx, objectDoc, u, []types.FieldKey{
			types.FieldTitle, types.FieldCreator, types.FieldType,
			types.FieldYear, types.FieldAccession,
		})

		row := export.ActivityRow{
			URI:        u,
			Title:      record.Get(types.FieldTitle),
			Creator:    record.Get(types.FieldCreator),
			ObjectType: record.Get(types.FieldType),
			ImageURI:   p.imageURI(ctx, u, objectDoc),
		}
		rows = append(rows, row)

		if err := p.idx.Upsert(ctx, "", record); err != nil {
			return err
		}
	}

	fileName := export.ActivityFileName(activityTitle)
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WriteActivitySpreadsheet(f, rows); err != nil {
		return err
	}
	if err := p.store.Save(); err != nil {
		return err
	}
	fmt.Printf("Spreadsheet was created successfully and exported to %s.\n", fileName)

	printUnique("Unique Creator Names:", rows, func(r export.ActivityRow) string { return r.Creator })
	printUnique("Unique Object Types:", rows, func(r export.ActivityRow) string { return r.ObjectType })
	return nil
}

// imageURI locates the record's IIIF image, applying the optional resize.
func (p *pipeline) imageURI(ctx context.Context, uri string, doc linked.Document) string {
	manifest := p.engine.FindManifest(ctx, doc)
	if manifest == nil {
		return ""
	}

	entry, _ := p.store.Get(uri)
	entry.Object = doc
	entry.Manifest = manifest
	p.store.Put(uri, entry)

	imageURI := linked.LocateImage(manifest)
	if imageURI == "" {
		fmt.Println("Image URI not found in IIIF manifest.")
		return ""
	}
	if p.cfg.Images.Resize != "" {
		resized, err := linked.ResizeURI(manifest, imageURI, p.cfg.Images.Resize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error occurred while resizing image: %v\n", err)
		} else {
			imageURI = resized
		}
	}
	return imageURI
}

func printUnique(header string, rows []export.ActivityRow, value func(export.ActivityRow) string) {
	seen := map[string]bool{}
	var values []string
	for _, r := range rows {
		v := value(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	fmt.Println(header, values)
}

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jimvine/rcellosaurus/internal/cellosaurus"
	"github.com/jimvine/rcellosaurus/internal/validator"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <accession>",
	Short: "Show the full detail of one cell line",
	Long: `Show every extracted field of a single record, looked up by primary
or secondary accession.`,
	Example: `  rcell show CVCL_0030
  rcell show CVCL_0030 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showFormat string

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "text", "Output format (text|json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	accession := args[0]
	if err := validator.ValidateAccession(accession); err != nil {
		printError("%v", err)
		return err
	}

	doc, err := loadDocument()
	if err != nil {
		return err
	}

	line, ok := doc.CellLine(accession)
	if !ok {
		printError("Cell line not found: %s", accession)
		return fmt.Errorf("cell line not found")
	}

	switch showFormat {
	case "json":
		return writeJSON(detailOf(line))
	case "text":
		return printDetail(line)
	default:
		return fmt.Errorf("unknown format: %s (want text|json)", showFormat)
	}
}

type showDetail struct {
	Accession    string        `json:"accession"`
	Name         string        `json:"name"`
	Category     string        `json:"category,omitempty"`
	Sex          string        `json:"sex,omitempty"`
	Accessions   []string      `json:"accessions"`
	Names        []string      `json:"names"`
	Species      []showPair    `json:"species,omitempty"`
	Diseases     []showPair    `json:"diseases,omitempty"`
	Comments     []showComment `json:"comments,omitempty"`
	DerivedFrom  []showPair    `json:"derived_from,omitempty"`
	SameOriginAs []showPair    `json:"same_origin_as,omitempty"`
	WebPages     []string      `json:"web_pages,omitempty"`
	References   []string      `json:"references,omitempty"`
}

type showPair struct {
	Name      string `json:"name"`
	Accession string `json:"accession"`
}

type showComment struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

func detailOf(line *cellosaurus.CellLine) showDetail {
	d := showDetail{
		Accession:  line.Accession(),
		Name:       line.Name(),
		Accessions: line.Accessions(),
		Names:      line.Names(),
		WebPages:   line.WebPages(),
		References: line.References(),
	}
	d.Category, _ = line.Category()
	d.Sex, _ = line.Sex()
	d.Species = zipPairs(line.Species(), line.SpeciesAccessions())
	d.Diseases = zipPairs(line.Diseases(), line.DiseaseAccessions())
	d.DerivedFrom = zipPairs(line.DerivedFrom(), line.DerivedFromAccessions())
	d.SameOriginAs = zipPairs(line.SameOriginAs(), line.SameOriginAsAccessions())
	for _, c := range line.CommentEntries() {
		d.Comments = append(d.Comments, showComment{Category: c.Category, Text: c.Text})
	}
	return d
}

func zipPairs(names, accs []string) []showPair {
	var out []showPair
	for i := 0; i < len(names) && i < len(accs); i++ {
		out = append(out, showPair{Name: names[i], Accession: accs[i]})
	}
	return out
}

func printDetail(line *cellosaurus.CellLine) error {
	d := detailOf(line)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%s:\t%s\n", label, value)
		}
	}

	row("Accession", d.Accession)
	row("Name", d.Name)
	row("Category", d.Category)
	row("Sex", d.Sex)
	row("Accessions", strings.Join(d.Accessions, ", "))
	row("Synonyms", strings.Join(line.Names("synonym"), ", "))
	row("Species", joinPairs(d.Species))
	row("Diseases", joinPairs(d.Diseases))
	row("Derived from", joinPairs(d.DerivedFrom))
	row("Same origin as", joinPairs(d.SameOriginAs))
	row("Web pages", strings.Join(d.WebPages, ", "))
	row("References", strings.Join(d.References, ", "))
	if err := w.Flush(); err != nil {
		return err
	}

	if len(d.Comments) > 0 {
		fmt.Println("\nComments:")
		for _, c := range d.Comments {
			fmt.Printf("  [%s] %s\n", c.Category, truncate(c.Text, 120))
		}
	}
	return nil
}

func joinPairs(pairs []showPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s (%s)", p.Name, p.Accession))
	}
	return strings.Join(parts, ", ")
}

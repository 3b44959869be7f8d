package testutil

import (
	"strings"
	"testing"

	"github.com/jimvine/rcellosaurus/internal/cellosaurus"
)

// FixtureXML is a three-record slice of a Cellosaurus release in the
// native XML format. The records cover the shapes the query layer has to
// handle: primary and secondary accessions, identifier and synonym
// names, tagged comments, cv-term species/disease/relative entries, web
// pages, attribute-borne references, and a record with no sex attribute.
const FixtureXML = `<?xml version="1.0" encoding="UTF-8"?>
<Cellosaurus>
  <header>
    <terminology-name>Cellosaurus</terminology-name>
    <description>Cellosaurus: a knowledge resource on cell lines</description>
    <release version="48.0" updated="2024-01-30" nb-cell-lines="3"/>
  </header>
  <cell-line-list>
    <cell-line category="Cancer cell line" sex="Male">
      <accession-list>
        <accession type="primary">CVCL_0001</accession>
        <accession type="secondary">CVCL_U001</accession>
      </accession-list>
      <name-list>
        <name type="identifier">HEL</name>
        <name type="synonym">Human ErythroLeukemia</name>
        <name type="synonym">GM06141</name>
      </name-list>
      <comment-list>
        <comment category="Group">Part of: ENCODE project common cell types.</comment>
        <comment category="Karyotypic information">Near-tetraploid karyotype.</comment>
      </comment-list>
      <species-list>
        <cv-term terminology="NCBI-Taxonomy" accession="9606">Homo sapiens</cv-term>
      </species-list>
      <disease-list>
        <cv-term terminology="NCIt" accession="C7152">Erythroleukemia</cv-term>
      </disease-list>
      <derived-from>
        <cv-term terminology="Cellosaurus" accession="CVCL_2481">GM06141-B</cv-term>
      </derived-from>
      <web-page-list>
        <url>https://en.wikipedia.org/wiki/HEL_cell_line</url>
      </web-page-list>
      <reference-list>
        <reference resource-internal-ref="PubMed=6177045"/>
        <reference resource-internal-ref="PubMed=2426498"/>
      </reference-list>
    </cell-line>
    <cell-line category="Cancer cell line" sex="Female">
      <accession-list>
        <accession type="primary">CVCL_0002</accession>
      </accession-list>
      <name-list>
        <name type="identifier">HeLa</name>
        <name type="synonym">Henrietta Lacks cells</name>
      </name-list>
      <comment-list>
        <comment category="Problematic cell line">Widely used contaminant of other cell cultures.</comment>
      </comment-list>
      <species-list>
        <cv-term terminology="NCBI-Taxonomy" accession="9606">Homo sapiens</cv-term>
      </species-list>
      <disease-list>
        <cv-term terminology="NCIt" accession="C4915">Cervical adenocarcinoma</cv-term>
      </disease-list>
      <same-origin-as>
        <cv-term terminology="Cellosaurus" accession="CVCL_3922">HeLa S3</cv-term>
      </same-origin-as>
      <web-page-list>
        <url>https://en.wikipedia.org/wiki/HeLa</url>
      </web-page-list>
      <reference-list>
        <reference resource-internal-ref="PubMed=4127659"/>
      </reference-list>
    </cell-line>
    <cell-line category="Stem cell">
      <accession-list>
        <accession type="primary">CVCL_0003</accession>
      </accession-list>
      <name-list>
        <name type="identifier">E14</name>
      </name-list>
      <species-list>
        <cv-term terminology="NCBI-Taxonomy" accession="10090">Mus musculus</cv-term>
      </species-list>
    </cell-line>
  </cell-line-list>
</Cellosaurus>`

// LoadFixture parses FixtureXML into a Document.
func LoadFixture(t *testing.T) *cellosaurus.Document {
	t.Helper()
	doc, err := cellosaurus.Load(strings.NewReader(FixtureXML))
	if err != nil {
		t.Fatalf("failed to load fixture document: %v", err)
	}
	return doc
}

// FixtureFile writes FixtureXML to a temporary file and returns its path.
func FixtureFile(t *testing.T) string {
	t.Helper()
	return TempFile(t, "cellosaurus.xml", FixtureXML)
}

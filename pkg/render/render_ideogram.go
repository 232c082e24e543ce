package render

import (
	"html/template"
	"io"

	"github.com/yumyai/ggideo/pkg/model"
)

var ideogramPageTemplate *template.Template

func init() {
	ideogramMainTmpl := `
	<!DOCTYPE html>
	<html>
	<head>
	    <link href="/static/style.css" rel="stylesheet"></link>
		<title>Genome Annotation Overview</title>
	</head>
	<body>
		<header class="app-header">
			<h1 class="app-name">ggideo</h1>
			<p class="app-description">
				annotation layout overview, one row per chromosome of the diagram.
			</p>
		</header>
		<p>Taxon: {{.TaxID}}</p>
		{{template "chrTable" .}}
	</body>
	</html>`

	chrTableTmpl := `
	{{define "chrTable"}}
		<table class="ideotable" border="1">
			<tr>
				<th>Chromosome</th>
				<th>Annotations</th>
				<th>Layout ({{.ChrHeight}}px)</th>
			</tr>
			{{range .Rows}}
				<tr>
					<td>{{.Chr}}</td>
					<td>{{len .Annots}}</td>
					<td>
						<div class="chr-lane" style="position:relative;width:{{$.ChrHeight}}px;height:12px;background:#EEE">
							{{range .Annots}}
								<span class="annot-bar"
									title="{{.Name}} {{.Start}}-{{.Stop}}"
									style="position:absolute;left:{{.Px}}px;width:{{$.BarWidth}}px;height:12px;background:{{.Color}}"></span>
							{{end}}
						</div>
					</td>
				</tr>
			{{end}}
		</table>
	{{end}}`

	ideogramPageTemplate = template.New("ideogram")
	ideogramPageTemplate = template.Must(ideogramPageTemplate.Parse(ideogramMainTmpl))
	ideogramPageTemplate = template.Must(ideogramPageTemplate.Parse(chrTableTmpl))
}

// Data for the ideogram overview page.
type IdeogramPageData struct {
	TaxID     int
	ChrHeight int
	BarWidth  int
	Rows      []model.ChromosomeAnnots
}

// BuildIdeogramPageData shapes a reconciled layout for the overview template.
func BuildIdeogramPageData(taxID int, settings model.Settings, chrHeight int, rows []model.ChromosomeAnnots) IdeogramPageData {
	return IdeogramPageData{
		TaxID:     taxID,
		ChrHeight: chrHeight,
		BarWidth:  settings.BarWidth,
		Rows:      rows,
	}
}

// RenderIdeogramPage renders the per-chromosome annotation overview.
func RenderIdeogramPage(w io.Writer, data IdeogramPageData) error {
	return ideogramPageTemplate.Execute(w, data)
}

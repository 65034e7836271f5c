package document

import (
	"bytes"
	"encoding/xml"
	"text/template"
)

const (
	nsA   = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	nsR   = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	nsP   = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	nsAll = nsA + " " + nsR + " " + nsP

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

	relPrefix = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"

	emptyGroup = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`
)

var funcs = template.FuncMap{
	"xml": func(s string) string {
		var b bytes.Buffer
		_ = xml.EscapeText(&b, []byte(s))
		return b.String()
	},
	"add": func(a, b int) int { return a + b },
}

func mustTemplate(name, body string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(body))
}

type part struct {
	name string
	tmpl *template.Template
}

var staticParts = []part{
	{"[Content_Types].xml", mustTemplate("types", xmlHeader+
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`+
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`+
		`<Default Extension="xml" ContentType="application/xml"/>`+
		`<Default Extension="png" ContentType="image/png"/>`+
		`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`+
		`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`+
		`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`+
		`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`+
		`<Override PartName="/ppt/presProps.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"/>`+
		`<Override PartName="/ppt/viewProps.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"/>`+
		`<Override PartName="/ppt/tableStyles.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"/>`+
		`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`+
		`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`+
		`{{range .Slides}}<Override PartName="/ppt/slides/slide{{.N}}.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>{{end}}`+
		`</Types>`)},

	{"_rels/.rels", mustTemplate("rels", xmlHeader+
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
		`<Relationship Id="rId1" Type="`+relPrefix+`officeDocument" Target="ppt/presentation.xml"/>`+
		`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>`+
		`<Relationship Id="rId3" Type="`+relPrefix+`extended-properties" Target="docProps/app.xml"/>`+
		`</Relationships>`)},

	{"docProps/core.xml", mustTemplate("core", xmlHeader+
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`+
		`<dc:title>{{xml .Title}}</dc:title><dc:creator>html2doc</dc:creator>`+
		`<dcterms:created xsi:type="dcterms:W3CDTF">{{.Created}}</dcterms:created>`+
		`<dcterms:modified xsi:type="dcterms:W3CDTF">{{.Created}}</dcterms:modified>`+
		`</cp:coreProperties>`)},

	{"docProps/app.xml", mustTemplate("app", xmlHeader+
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">`+
		`<Application>html2doc</Application><PresentationFormat>Custom</PresentationFormat><Slides>{{.NumSlide}}</Slides>`+
		`</Properties>`)},

	{"ppt/presentation.xml", mustTemplate("presentation", xmlHeader+
		`<p:presentation `+nsAll+` saveSubsetFonts="1">`+
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`+
		`<p:sldIdLst>{{range .Slides}}<p:sldId id="{{add .N 255}}" r:id="rId{{add .N 5}}"/>{{end}}</p:sldIdLst>`+
		`<p:sldSz cx="{{.Width}}" cy="{{.Height}}"/>`+
		`<p:notesSz cx="6858000" cy="9144000"/>`+
		`</p:presentation>`)},

	{"ppt/_rels/presentation.xml.rels", mustTemplate("presentation-rels", xmlHeader+
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
		`<Relationship Id="rId1" Type="`+relPrefix+`slideMaster" Target="slideMasters/slideMaster1.xml"/>`+
		`<Relationship Id="rId2" Type="`+relPrefix+`theme" Target="theme/theme1.xml"/>`+
		`<Relationship Id="rId3" Type="`+relPrefix+`presProps" Target="presProps.xml"/>`+
		`<Relationship Id="rId4" Type="`+relPrefix+`viewProps" Target="viewProps.xml"/>`+
		`<Relationship Id="rId5" Type="`+relPrefix+`tableStyles" Target="tableStyles.xml"/>`+
		`{{range .Slides}}<Relationship Id="rId{{add .N 5}}" Type="`+relPrefix+`slide" Target="slides/slide{{.N}}.xml"/>{{end}}`+
		`</Relationships>`)},

	{"ppt/presProps.xml", mustTemplate("presProps", xmlHeader+
		`<p:presentationPr `+nsAll+`/>`)},

	{"ppt/viewProps.xml", mustTemplate("viewProps", xmlHeader+
		`<p:viewPr `+nsAll+`/>`)},

	{"ppt/tableStyles.xml", mustTemplate("tableStyles", xmlHeader+
		`<a:tblStyleLst `+nsA+` def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`)},

	{"ppt/slideMasters/slideMaster1.xml", mustTemplate("master", xmlHeader+
		`<p:sldMaster `+nsAll+`>`+
		`<p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg>`+
		`<p:spTree>`+emptyGroup+`</p:spTree></p:cSld>`+
		`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`+
		`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>`+
		`<p:txStyles><p:titleStyle/><p:bodyStyle/><p:otherStyle/></p:txStyles>`+
		`</p:sldMaster>`)},

	{"ppt/slideMasters/_rels/slideMaster1.xml.rels", mustTemplate("master-rels", xmlHeader+
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
		`<Relationship Id="rId1" Type="`+relPrefix+`slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`+
		`<Relationship Id="rId2" Type="`+relPrefix+`theme" Target="../theme/theme1.xml"/>`+
		`</Relationships>`)},

	{"ppt/slideLayouts/slideLayout1.xml", mustTemplate("layout", xmlHeader+
		`<p:sldLayout `+nsAll+` type="blank" preserve="1">`+
		`<p:cSld name="Blank"><p:spTree>`+emptyGroup+`</p:spTree></p:cSld>`+
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`+
		`</p:sldLayout>`)},

	{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", mustTemplate("layout-rels", xmlHeader+
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
		`<Relationship Id="rId1" Type="`+relPrefix+`slideMaster" Target="../slideMasters/slideMaster1.xml"/>`+
		`</Relationships>`)},

	{"ppt/theme/theme1.xml", mustTemplate("theme", xmlHeader+
		`<a:theme `+nsA+` name="Office Theme"><a:themeElements>`+
		`<a:clrScheme name="Office">`+
		`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>`+
		`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>`+
		`<a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>`+
		`<a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2>`+
		`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4>`+
		`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6>`+
		`<a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink>`+
		`</a:clrScheme>`+
		`<a:fontScheme name="Office">`+
		`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>`+
		`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>`+
		`</a:fontScheme>`+
		`<a:fmtScheme name="Office">`+
		`<a:fillStyleLst>`+solidPh+solidPh+solidPh+`</a:fillStyleLst>`+
		`<a:lnStyleLst><a:ln w="6350">`+solidPh+`</a:ln><a:ln w="12700">`+solidPh+`</a:ln><a:ln w="19050">`+solidPh+`</a:ln></a:lnStyleLst>`+
		`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>`+
		`<a:bgFillStyleLst>`+solidPh+solidPh+solidPh+`</a:bgFillStyleLst>`+
		`</a:fmtScheme>`+
		`</a:themeElements></a:theme>`)},
}

const solidPh = `<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>`

var slideTmpl = mustTemplate("slide", xmlHeader+
	`<p:sld `+nsAll+`>`+
	`<p:cSld><p:spTree>`+emptyGroup+
	`<p:pic>`+
	`<p:nvPicPr><p:cNvPr id="2" name="Slide Image {{.N}}"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`+
	`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
	`<p:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="{{.Width}}" cy="{{.Height}}"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
	`</p:pic>`+
	`</p:spTree></p:cSld>`+
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`+
	`</p:sld>`)

var slideRelsTmpl = mustTemplate("slide-rels", xmlHeader+
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
	`<Relationship Id="rId1" Type="`+relPrefix+`slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`+
	`<Relationship Id="rId2" Type="`+relPrefix+`image" Target="../media/image{{.N}}.png"/>`+
	`</Relationships>`)

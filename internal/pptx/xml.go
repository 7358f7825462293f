package pptx

import "encoding/xml"

// XML mappings for the OOXML parts we read. Element names are matched by
// local name so the presentationml (p:) and drawingml (a:) namespaces can
// share one set of structs.

// xmlSlide is the root of ppt/slides/slideN.xml (p:sld).
type xmlSlide struct {
	XMLName    xml.Name     `xml:"sld"`
	Show       string       `xml:"show,attr"`
	CSld       xmlCSld      `xml:"cSld"`
	Transition *xmlPresence `xml:"transition"`
	Timing     *xmlRawInner `xml:"timing"`
}

// xmlPresence marks an element whose existence is all we care about.
type xmlPresence struct{}

// xmlRawInner captures an element subtree for token-level scanning.
type xmlRawInner struct {
	Inner []byte `xml:",innerxml"`
}

type xmlCSld struct {
	Name   string     `xml:"name,attr"`
	SpTree *xmlSpTree `xml:"spTree"`
}

// xmlSpTree is a shape container: plain shapes, nested groups, and
// graphic frames (tables). Relative order across the three lists is not
// preserved, which the analysis does not depend on.
type xmlSpTree struct {
	Shapes []xmlSp           `xml:"sp"`
	Groups []xmlSpTree       `xml:"grpSp"`
	Frames []xmlGraphicFrame `xml:"graphicFrame"`
	NvPr   *xmlNvPrContainer `xml:"nvGrpSpPr"`
}

type xmlNvPrContainer struct {
	CNvPr *xmlCNvPr `xml:"cNvPr"`
}

type xmlSp struct {
	NvSpPr *xmlNvSpPr `xml:"nvSpPr"`
	TxBody *xmlTxBody `xml:"txBody"`
}

type xmlNvSpPr struct {
	CNvPr *xmlCNvPr `xml:"cNvPr"`
	NvPr  *xmlNvPr  `xml:"nvPr"`
}

type xmlCNvPr struct {
	Name string `xml:"name,attr"`
}

type xmlNvPr struct {
	Ph *xmlPh `xml:"ph"`
}

type xmlPh struct {
	Type string `xml:"type,attr"`
	Idx  string `xml:"idx,attr"`
}

type xmlGraphicFrame struct {
	NvPr *xmlNvPrGF `xml:"nvGraphicFramePr"`
	Tbl  *xmlTbl    `xml:"graphic>graphicData>tbl"`
}

type xmlNvPrGF struct {
	CNvPr *xmlCNvPr `xml:"cNvPr"`
}

type xmlTbl struct {
	Rows []xmlTr `xml:"tr"`
}

type xmlTr struct {
	Cells []xmlTc `xml:"tc"`
}

type xmlTc struct {
	TxBody *xmlTxBody `xml:"txBody"`
}

type xmlTxBody struct {
	LstStyle   *xmlLstStyle `xml:"lstStyle"`
	Paragraphs []xmlPara    `xml:"p"`
}

type xmlLstStyle struct {
	DefPPr  *xmlPPr `xml:"defPPr"`
	Lvl1PPr *xmlPPr `xml:"lvl1pPr"`
}

type xmlPara struct {
	PPr  *xmlPPr  `xml:"pPr"`
	Runs []xmlRun `xml:"r"`
}

type xmlPPr struct {
	DefRPr *xmlRPr `xml:"defRPr"`
}

type xmlRun struct {
	RPr  *xmlRPr `xml:"rPr"`
	Text string  `xml:"t"`
}

type xmlRPr struct {
	Sz    string       `xml:"sz,attr"`
	Latin *xmlTypeface `xml:"latin"`
	EA    *xmlTypeface `xml:"ea"`
	CS    *xmlTypeface `xml:"cs"`
	Sym   *xmlTypeface `xml:"sym"`
}

type xmlTypeface struct {
	Typeface string `xml:"typeface,attr"`
}

// xmlTheme is the root of ppt/theme/themeN.xml (a:theme).
type xmlTheme struct {
	Elements struct {
		FontScheme xmlFontScheme `xml:"fontScheme"`
	} `xml:"themeElements"`
}

type xmlFontScheme struct {
	Name  string     `xml:"name,attr"`
	Major xmlFontSet `xml:"majorFont"`
	Minor xmlFontSet `xml:"minorFont"`
}

type xmlFontSet struct {
	Latin *xmlTypeface `xml:"latin"`
	EA    *xmlTypeface `xml:"ea"`
	CS    *xmlTypeface `xml:"cs"`
	Sym   *xmlTypeface `xml:"sym"`
}

// xmlMaster is the root of ppt/slideMasters/slideMasterN.xml (p:sldMaster).
type xmlMaster struct {
	CSld     xmlCSld      `xml:"cSld"`
	TxStyles *xmlTxStyles `xml:"txStyles"`
}

type xmlTxStyles struct {
	Title *xmlTxStyle `xml:"titleStyle"`
	Body  *xmlTxStyle `xml:"bodyStyle"`
	Other *xmlTxStyle `xml:"otherStyle"`
}

type xmlTxStyle struct {
	Lvl1 *xmlPPr `xml:"lvl1pPr"`
}

// xmlLayout is the root of ppt/slideLayouts/slideLayoutN.xml (p:sldLayout).
type xmlLayout struct {
	CSld xmlCSld `xml:"cSld"`
}

// xmlRels is the root of a .rels part.
type xmlRels struct {
	Rels []xmlRel `xml:"Relationship"`
}

type xmlRel struct {
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// xmlCoreProps is the root of docProps/core.xml.
type xmlCoreProps struct {
	Title    string `xml:"title"`
	Creator  string `xml:"creator"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

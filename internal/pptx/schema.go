package pptx

// Typed schema for the OOXML parts this package reads. Pointer fields encode
// element presence: nil means the element was absent from the source XML, and
// extraction code branches on that instead of chasing optional paths.
//
// encoding/xml matches on local names, which is what we want here: slide
// parts from different producers disagree on prefix spelling but not on the
// DrawingML local names.

// --- ppt/slides/slideN.xml ---

type slideXML struct {
	CSld *cSldXML `xml:"cSld"`
}

type cSldXML struct {
	Bg     *bgXML     `xml:"bg"`
	SpTree *spTreeXML `xml:"spTree"`
}

type spTreeXML struct {
	Shapes []spXML  `xml:"sp"`
	Pics   []picXML `xml:"pic"`
}

type spXML struct {
	NvSpPr *nvSpPrXML `xml:"nvSpPr"`
	SpPr   *spPrXML   `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	CNvPr *cNvPrXML `xml:"cNvPr"`
}

type cNvPrXML struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type picXML struct {
	NvPicPr  *nvPicPrXML  `xml:"nvPicPr"`
	BlipFill *blipFillXML `xml:"blipFill"`
	SpPr     *spPrXML     `xml:"spPr"`
}

type nvPicPrXML struct {
	CNvPr *cNvPrXML `xml:"cNvPr"`
}

type spPrXML struct {
	Xfrm *xfrmXML `xml:"xfrm"`
}

type xfrmXML struct {
	Off *offXML `xml:"off"`
}

type offXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type txBodyXML struct {
	Paragraphs []paraXML `xml:"p"`
}

type paraXML struct {
	PPr  *pPrXML  `xml:"pPr"`
	Runs []runXML `xml:"r"`
}

type pPrXML struct {
	Jc *jcXML `xml:"jc"`
}

type jcXML struct {
	Val string `xml:"val,attr"`
}

type runXML struct {
	RPr *rPrXML `xml:"rPr"`
	T   string  `xml:"t"`
}

type rPrXML struct {
	Sz        string        `xml:"sz,attr"`
	B         string        `xml:"b,attr"`
	I         string        `xml:"i,attr"`
	Latin     *latinXML     `xml:"latin"`
	SolidFill *solidFillXML `xml:"solidFill"`
}

type latinXML struct {
	Typeface string `xml:"typeface,attr"`
}

// --- fills (run properties and slide backgrounds) ---

type solidFillXML struct {
	SrgbClr *srgbClrXML `xml:"srgbClr"`
}

type srgbClrXML struct {
	Val   string    `xml:"val,attr"`
	Alpha *alphaXML `xml:"alpha"`
}

type alphaXML struct {
	Val int `xml:"val,attr"`
}

type bgXML struct {
	BgPr *bgPrXML `xml:"bgPr"`
}

type bgPrXML struct {
	SolidFill *solidFillXML `xml:"solidFill"`
	GradFill  *gradFillXML  `xml:"gradFill"`
	PattFill  *pattFillXML  `xml:"pattFill"`
	BlipFill  *blipFillXML  `xml:"blipFill"`
	NoFill    *noFillXML    `xml:"noFill"`
}

type gradFillXML struct {
	GsLst *gsLstXML `xml:"gsLst"`
	Lin   *linXML   `xml:"lin"`
}

type gsLstXML struct {
	Stops []gsXML `xml:"gs"`
}

type gsXML struct {
	Pos     string      `xml:"pos,attr"`
	SrgbClr *srgbClrXML `xml:"srgbClr"`
}

type linXML struct {
	Ang int `xml:"ang,attr"`
}

type pattFillXML struct {
	Prst  string      `xml:"prst,attr"`
	FgClr *pattClrXML `xml:"fgClr"`
	BgClr *pattClrXML `xml:"bgClr"`
}

type pattClrXML struct {
	SrgbClr *srgbClrXML `xml:"srgbClr"`
}

type blipFillXML struct {
	Blip *blipXML `xml:"blip"`
}

type blipXML struct {
	Embed string `xml:"embed,attr"`
}

type noFillXML struct{}

// --- ppt/presentation.xml ---

type presentationXML struct {
	SldIDLst *sldIDLstXML `xml:"sldIdLst"`
}

type sldIDLstXML struct {
	SldIDs []sldIDXML `xml:"sldId"`
}

type sldIDXML struct {
	// p:sldId carries both a numeric @id and a relationship @r:id whose local
	// names collide, so the relationship one needs its full namespace.
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

// --- docProps/core.xml ---

type corePropsXML struct {
	Title    string `xml:"title"`
	Subject  string `xml:"subject"`
	Creator  string `xml:"creator"`
	Keywords string `xml:"keywords"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

// --- ppt/theme/themeN.xml ---

type themeXML struct {
	Name          string            `xml:"name,attr"`
	ThemeElements *themeElementsXML `xml:"themeElements"`
}

type themeElementsXML struct {
	ClrScheme *clrSchemeXML `xml:"clrScheme"`
}

type clrSchemeXML struct {
	Dk1     *schemeClrXML `xml:"dk1"`
	Lt1     *schemeClrXML `xml:"lt1"`
	Dk2     *schemeClrXML `xml:"dk2"`
	Lt2     *schemeClrXML `xml:"lt2"`
	Accent1 *schemeClrXML `xml:"accent1"`
	Accent2 *schemeClrXML `xml:"accent2"`
	Accent3 *schemeClrXML `xml:"accent3"`
	Accent4 *schemeClrXML `xml:"accent4"`
	Accent5 *schemeClrXML `xml:"accent5"`
	Accent6 *schemeClrXML `xml:"accent6"`
}

type schemeClrXML struct {
	SrgbClr *srgbClrXML `xml:"srgbClr"`
	SysClr  *sysClrXML  `xml:"sysClr"`
}

type sysClrXML struct {
	LastClr string `xml:"lastClr,attr"`
}

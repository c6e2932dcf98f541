package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Office formats (docx/xlsx/pptx and the OpenDocument pair) are all zip
// containers around XML parts, so they are walked with archive/zip and
// a streaming xml.Decoder rather than a format library.

func openZip(data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not a zip container: %w", err)
	}
	return zr, nil
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("missing zip entry %q", name)
}

// extractDOCX concatenates body paragraph text in document order, then
// appends all table-cell text after it. The unit count approximates
// pages from the body paragraph count.
func extractDOCX(data []byte) (string, int, error) {
	zr, err := openZip(data)
	if err != nil {
		return "", 0, err
	}
	docXML, err := readZipFile(zr, "word/document.xml")
	if err != nil {
		return "", 0, fmt.Errorf("invalid docx: %w", err)
	}

	var bodyParas, tableParas []string
	var cur strings.Builder
	tblDepth := 0
	inPara := false
	inText := false

	dec := xml.NewDecoder(bytes.NewReader(docXML))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, fmt.Errorf("invalid docx xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
			case "p":
				inPara = true
				cur.Reset()
			case "t":
				inText = true
			case "tab":
				if inPara {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if inPara {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tblDepth > 0 {
					tblDepth--
				}
			case "t":
				inText = false
			case "p":
				if inPara {
					para := strings.TrimSpace(cur.String())
					if para != "" {
						if tblDepth > 0 {
							tableParas = append(tableParas, para)
						} else {
							bodyParas = append(bodyParas, para)
						}
					}
				}
				inPara = false
			}
		case xml.CharData:
			if inPara && inText {
				cur.Write(t)
			}
		}
	}

	parts := make([]string, 0, len(bodyParas)+len(tableParas))
	parts = append(parts, bodyParas...)
	parts = append(parts, tableParas...)

	units := len(bodyParas) / docxParagraphsPerUnit
	if units < 1 {
		units = 1
	}
	return strings.Join(parts, "\n"), units, nil
}

// extractXLSX concatenates each sheet's rows as pipe-joined cell values,
// prefixed by a sheet name header. Unit count is the sheet count.
func extractXLSX(data []byte) (string, int, error) {
	zr, err := openZip(data)
	if err != nil {
		return "", 0, err
	}

	names, err := xlsxSheetNames(zr)
	if err != nil {
		return "", 0, err
	}
	shared := xlsxSharedStrings(zr)

	var sb strings.Builder
	for i, name := range names {
		sheetXML, err := readZipFile(zr, fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1))
		if err != nil {
			// Sheet part missing for its workbook entry; skip it.
			continue
		}
		rows, err := xlsxSheetRows(sheetXML, shared)
		if err != nil {
			return "", 0, err
		}
		sb.WriteString("Sheet: " + name + "\n")
		for _, row := range rows {
			sb.WriteString(row)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String(), len(names), nil
}

func xlsxSheetNames(zr *zip.Reader) ([]string, error) {
	wb, err := readZipFile(zr, "xl/workbook.xml")
	if err != nil {
		return nil, fmt.Errorf("invalid xlsx: %w", err)
	}
	var names []string
	dec := xml.NewDecoder(bytes.NewReader(wb))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid workbook xml: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "sheet" {
			for _, attr := range se.Attr {
				if attr.Name.Local == "name" {
					names = append(names, attr.Value)
				}
			}
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return names, nil
}

func xlsxSharedStrings(zr *zip.Reader) []string {
	raw, err := readZipFile(zr, "xl/sharedStrings.xml")
	if err != nil {
		return nil // optional part
	}
	var shared []string
	var cur strings.Builder
	inSI := false
	inT := false
	dec := xml.NewDecoder(bytes.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				inSI = true
				cur.Reset()
			case "t":
				inT = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "si":
				shared = append(shared, cur.String())
				inSI = false
			case "t":
				inT = false
			}
		case xml.CharData:
			if inSI && inT {
				cur.Write(t)
			}
		}
	}
	return shared
}

func xlsxSheetRows(sheetXML []byte, shared []string) ([]string, error) {
	var rows []string
	var cells []string
	var val strings.Builder
	cellType := ""
	inValue := false

	dec := xml.NewDecoder(bytes.NewReader(sheetXML))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid sheet xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "row":
				cells = cells[:0]
			case "c":
				cellType = ""
				for _, attr := range t.Attr {
					if attr.Name.Local == "t" {
						cellType = attr.Value
					}
				}
			case "v", "t":
				inValue = true
				val.Reset()
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "v", "t":
				inValue = false
				text := val.String()
				if cellType == "s" {
					if idx, err := strconv.Atoi(strings.TrimSpace(text)); err == nil && idx >= 0 && idx < len(shared) {
						text = shared[idx]
					}
				}
				if strings.TrimSpace(text) != "" {
					cells = append(cells, strings.TrimSpace(text))
				}
			case "row":
				if len(cells) > 0 {
					rows = append(rows, strings.Join(cells, " | "))
				}
			}
		case xml.CharData:
			if inValue {
				val.Write(t)
			}
		}
	}
	return rows, nil
}

// extractPPTX concatenates each slide's shape text, prefixed by a slide
// index header. Unit count is the slide count.
func extractPPTX(data []byte) (string, int, error) {
	zr, err := openZip(data)
	if err != nil {
		return "", 0, err
	}

	slideCount := 0
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slideCount++
		}
	}
	if slideCount == 0 {
		return "", 0, fmt.Errorf("invalid pptx: no slides")
	}

	var sb strings.Builder
	for i := 1; i <= slideCount; i++ {
		slideXML, err := readZipFile(zr, fmt.Sprintf("ppt/slides/slide%d.xml", i))
		if err != nil {
			continue
		}
		texts, err := collectElementText(slideXML, "t")
		if err != nil {
			return "", 0, err
		}
		sb.WriteString(fmt.Sprintf("Slide %d:\n", i))
		sb.WriteString(strings.Join(texts, "\n"))
		sb.WriteString("\n\n")
	}

	return sb.String(), slideCount, nil
}

// extractODF concatenates all paragraph text nodes of an OpenDocument
// text or spreadsheet file. Unit count is 1 for this family.
func extractODF(data []byte) (string, int, error) {
	zr, err := openZip(data)
	if err != nil {
		return "", 0, err
	}
	content, err := readZipFile(zr, "content.xml")
	if err != nil {
		return "", 0, fmt.Errorf("invalid opendocument file: %w", err)
	}

	var paras []string
	var cur strings.Builder
	pDepth := 0
	dec := xml.NewDecoder(bytes.NewReader(content))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, fmt.Errorf("invalid opendocument xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" || t.Name.Local == "h" {
				if pDepth == 0 {
					cur.Reset()
				}
				pDepth++
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "h" {
				pDepth--
				if pDepth == 0 {
					if para := strings.TrimSpace(cur.String()); para != "" {
						paras = append(paras, para)
					}
				}
			}
		case xml.CharData:
			if pDepth > 0 {
				cur.Write(t)
			}
		}
	}

	return strings.Join(paras, "\n"), 1, nil
}

// collectElementText returns the character data of every element with
// the given local name, in document order.
func collectElementText(raw []byte, local string) ([]string, error) {
	var out []string
	var cur strings.Builder
	depth := 0
	dec := xml.NewDecoder(bytes.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == local {
				if depth == 0 {
					cur.Reset()
				}
				depth++
			}
		case xml.EndElement:
			if t.Name.Local == local {
				depth--
				if depth == 0 {
					if s := cur.String(); strings.TrimSpace(s) != "" {
						out = append(out, s)
					}
				}
			}
		case xml.CharData:
			if depth > 0 {
				cur.Write(t)
			}
		}
	}
	return out, nil
}

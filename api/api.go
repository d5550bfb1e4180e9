// Package api serves the JSON endpoints used by the invoice generator and
// the identifier checkers.
package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invoiceflow/site/content"
	"github.com/invoiceflow/site/excel"
	"github.com/invoiceflow/site/invoice"
	"github.com/invoiceflow/site/share"
	"github.com/invoiceflow/site/ukid"
	"github.com/invoiceflow/site/utils/jsonschema"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
	"github.com/yaoapp/kun/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const identifierSchema = `{
  "type": "object",
  "properties": {"value": {"type": "string", "maxLength": 64}},
  "required": ["value"]
}`

var identifierValidator = jsonschema.MustNew(identifierSchema)

const searchLimit = 10

// Attach register the endpoints on the group
func Attach(group *gin.RouterGroup) {
	group.GET("/health", health)

	group.GET("/templates", templates)
	group.GET("/templates/:slug", template)

	group.POST("/invoice/calculate", calculate)
	group.POST("/invoice/validate", validate)
	group.POST("/invoice/pdf", pdf)
	group.POST("/invoice/xlsx", xlsx)
	group.POST("/invoice/preview", preview)

	group.GET("/identifiers", identifiers)
	group.POST("/identifiers/:kind", identifier)

	group.GET("/search", search)
}

// fail write the error response
func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"code": code, "message": message})
}

// decode read the invoice payload, writes a 400 response when it does not match the schema
func decode(c *gin.Context) (*invoice.InvoiceData, bool) {
	payload, err := c.GetRawData()
	if err != nil {
		fail(c, http.StatusBadRequest, "could not read the request body")
		return nil, false
	}

	inv, err := invoice.Decode(payload)
	if err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    http.StatusBadRequest,
				"message": "the invoice does not match the schema",
				"errors":  verr.Fields,
			})
			return nil, false
		}
		fail(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return inv, true
}

// check validate the invoice, writes a 422 response when it is not valid
func check(c *gin.Context, inv *invoice.InvoiceData) bool {
	if err := inv.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"valid": false, "errors": invoice.FieldErrors(err)})
		return false
	}
	return true
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "name": share.BUILDNAME, "version": share.VERSION})
}

func templates(c *gin.Context) {
	c.JSON(http.StatusOK, invoice.Templates())
}

func template(c *gin.Context) {
	slug := c.Param("slug")
	inv, err := invoice.FromTemplate(slug)
	if err != nil {
		fail(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": invoice.TemplateBySlug(slug), "invoice": inv})
}

func calculate(c *gin.Context) {
	inv, ok := decode(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": inv, "totals": inv.Totals, "formatted": inv.Summarize()})
}

func validate(c *gin.Context) {
	inv, ok := decode(c)
	if !ok {
		return
	}
	if !check(c, inv) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "errors": []invoice.FieldError{}})
}

func pdf(c *gin.Context) {
	inv, ok := decode(c)
	if !ok || !check(c, inv) {
		return
	}

	if cast.ToBool(c.Query("download")) {
		var buf bytes.Buffer
		if err := invoice.RenderPDF(&buf, inv); err != nil {
			log.With(log.F{"number": inv.Number}).Error("[api] pdf: %s", err.Error())
			fail(c, http.StatusInternalServerError, "failed to generate the PDF, please try again")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+inv.Filename("pdf")+`"`)
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
		return
	}

	filename, data, err := invoice.PDFBase64(inv)
	if err != nil {
		log.With(log.F{"number": inv.Number}).Error("[api] pdf: %s", err.Error())
		fail(c, http.StatusInternalServerError, "failed to generate the PDF, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"filename": filename, "data": data})
}

func xlsx(c *gin.Context) {
	inv, ok := decode(c)
	if !ok || !check(c, inv) {
		return
	}

	var buf bytes.Buffer
	if err := excel.Write(inv, &buf); err != nil {
		log.With(log.F{"number": inv.Number}).Error("[api] xlsx: %s", err.Error())
		fail(c, http.StatusInternalServerError, "failed to generate the spreadsheet, please try again")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+inv.Filename("xlsx")+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func preview(c *gin.Context) {
	inv, ok := decode(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := invoice.RenderPreview(&buf, inv); err != nil {
		log.Error("[api] preview: %s", err.Error())
		fail(c, http.StatusInternalServerError, "failed to render the preview")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

type kindInfo struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Example     string `json:"example"`
	Description string `json:"description"`
}

func identifiers(c *gin.Context) {
	list := []kindInfo{}
	for _, name := range ukid.Kinds() {
		kind, _ := ukid.Lookup(name)
		list = append(list, kindInfo{Name: kind.Name, Label: kind.Label, Example: kind.Example, Description: kind.Description})
	}
	c.JSON(http.StatusOK, list)
}

func identifier(c *gin.Context) {
	name := c.Param("kind")
	if _, has := ukid.Lookup(name); !has {
		fail(c, http.StatusNotFound, "unknown identifier kind "+name)
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		fail(c, http.StatusBadRequest, "could not read the request body")
		return
	}
	if err := identifierValidator.ValidateJSON(payload); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := ukid.Check(name, req.Value)
	if err != nil {
		fail(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}

func search(c *gin.Context) {
	limit := cast.ToInt(c.DefaultQuery("limit", cast.ToString(searchLimit)))
	if limit <= 0 || limit > 50 {
		limit = searchLimit
	}
	c.JSON(http.StatusOK, gin.H{"query": c.Query("q"), "results": content.Search(c.Query("q"), limit)})
}

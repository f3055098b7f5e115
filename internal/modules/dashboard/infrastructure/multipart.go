package infrastructure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"

	products "storeAdmin/internal/modules/products/domain"
	settings "storeAdmin/internal/modules/settings/domain"
	"storeAdmin/internal/shared/httputil"
)

type multipartBody struct {
	body        bytes.Buffer
	contentType string
}

type multipartWriter struct {
	out    *multipartBody
	writer *multipart.Writer
	err    error
}

func newMultipartWriter() *multipartWriter {
	out := &multipartBody{}
	return &multipartWriter{out: out, writer: multipart.NewWriter(&out.body)}
}

func (w *multipartWriter) field(name, value string) {
	if w.err != nil {
		return
	}
	w.err = w.writer.WriteField(name, value)
}

func (w *multipartWriter) jsonField(name string, value any) {
	if w.err != nil {
		return
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("encode %s: %w", name, err)
		return
	}
	w.err = w.writer.WriteField(name, string(encoded))
}

func (w *multipartWriter) file(name string, upload httputil.FileUpload) {
	if w.err != nil {
		return
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, upload.FileName))
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := w.writer.CreatePart(header)
	if err != nil {
		w.err = err
		return
	}
	_, w.err = part.Write(upload.Content)
}

func (w *multipartWriter) close() (*multipartBody, error) {
	if w.err != nil {
		return nil, fmt.Errorf("build multipart body: %w", w.err)
	}
	if err := w.writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}
	w.out.contentType = w.writer.FormDataContentType()
	return w.out, nil
}

// encodeProduct writes the product form fields the add-product and update endpoints expect.
// List fields travel as JSON strings and existing_images is always present.
func encodeProduct(submission products.ProductSubmission) (*multipartBody, error) {
	w := newMultipartWriter()
	w.field("public_key", submission.OwnerID)
	w.field("skuid", submission.SKU)
	w.field("product_name", submission.Name)
	w.field("product_description", submission.Description)
	w.field("product_price", formatFloat(submission.Price))
	w.field("sales_price", formatFloat(submission.SalesPrice))
	w.field("product_discount", formatFloat(submission.Discount))
	w.field("product_discount_type", submission.DiscountType)
	w.field("gender", submission.Gender)
	w.field("product_stock", strconv.Itoa(submission.Stock))
	w.field("status", submission.Status)
	w.jsonField("product_categories", nonNil(submission.Categories))
	w.jsonField("product_sizes", nonNil(submission.Sizes))
	w.jsonField("product_colors", nonNil(submission.Colors))
	for _, image := range submission.NewImages {
		w.file("product_images", image)
	}
	w.jsonField("existing_images", nonNil(submission.ExistingImages))
	return w.close()
}

func encodeAccountSettings(update settings.Update) (*multipartBody, error) {
	w := newMultipartWriter()
	w.field("display_name", update.DisplayName)
	w.field("phone_number", update.PhoneNumber)
	w.field("email", update.Email)
	if update.HasImage() {
		w.file("profile_image", *update.ProfileImage)
	}
	return w.close()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

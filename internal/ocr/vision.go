// Package ocr recognizes text in receipt images using the Google Cloud
// Vision API.
package ocr

import (
	"context"
	"encoding/base64"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"

	"fjacquet/flatbot/internal/boterror"
	"fjacquet/flatbot/internal/logging"
)

// Client wraps the Vision images.annotate endpoint.
type Client struct {
	svc *vision.Service
	log logging.Logger
}

// New creates a Vision client using the given Google API client options
// (typically option.WithCredentialsFile).
func New(ctx context.Context, log logging.Logger, opts ...option.ClientOption) (*Client, error) {
	if log == nil {
		log = logging.GetLogger()
	}
	svc, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, &boterror.AdapterError{Adapter: "vision", Op: "create client", Err: err}
	}
	return &Client{svc: svc, log: log}, nil
}

// RecognizeText runs TEXT_DETECTION over the image and returns the full
// recognized text. An image with no text yields an empty string.
func (c *Client) RecognizeText(ctx context.Context, image []byte) (string, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
				Features: []*vision.Feature{{Type: "TEXT_DETECTION"}},
			},
		},
	}

	resp, err := c.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return "", &boterror.AdapterError{Adapter: "vision", Op: "annotate", Err: err}
	}
	if len(resp.Responses) == 0 {
		return "", &boterror.AdapterError{Adapter: "vision", Op: "annotate", Err: errEmptyResponse}
	}

	r := resp.Responses[0]
	if r.Error != nil {
		return "", &boterror.AdapterError{Adapter: "vision", Op: "annotate", Err: &apiError{message: r.Error.Message}}
	}
	if r.FullTextAnnotation != nil {
		return r.FullTextAnnotation.Text, nil
	}
	if len(r.TextAnnotations) > 0 {
		return r.TextAnnotations[0].Description, nil
	}

	c.log.Debug("No text found in image")
	return "", nil
}

var errEmptyResponse = &apiError{message: "empty annotate response"}

type apiError struct {
	message string
}

func (e *apiError) Error() string {
	return e.message
}

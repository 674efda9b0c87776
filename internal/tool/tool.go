// Package tool declares the MCP tools exposed by the server and the handlers
// that bridge tool calls to the Replicate client.
package tool

import (
	"strings"

	"fluxmcp/internal/replicate"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	GenerateImageName = "generate_image_via_flux_schnell"
	GetImageName      = "get_generated_image_via_flux_schnell"
)

var statusVocabulary = strings.Join([]string{
	replicate.StatusStarting,
	replicate.StatusProcessing,
	replicate.StatusSucceeded,
	replicate.StatusFailed,
	replicate.StatusCanceled,
}, ", ")

// GenerateImageTool describes the prediction-starting tool. Definitions are
// static; the server returns the same two descriptors on every list request.
func GenerateImageTool() mcp.Tool {
	return mcp.NewTool(GenerateImageName,
		mcp.WithDescription("Generate an image from a text prompt using the "+
			"black-forest-labs/flux-schnell model on Replicate. Returns the raw "+
			"prediction JSON, including an id and one of the statuses "+
			statusVocabulary+". When the status is succeeded the output field "+
			"holds the generated image URLs; otherwise poll "+GetImageName+
			" with the prediction id."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("Text description of the image to generate."),
		),
	)
}

// GetImageTool describes the prediction-polling tool.
func GetImageTool() mcp.Tool {
	return mcp.NewTool(GetImageName,
		mcp.WithDescription("Fetch a previously started flux-schnell prediction "+
			"by its id. Returns the raw prediction JSON with one of the statuses "+
			statusVocabulary+". When the status is succeeded the output field "+
			"holds the generated image URLs."),
		mcp.WithString("prediction_id",
			mcp.Required(),
			mcp.Description("Id returned by "+GenerateImageName+"."),
		),
	)
}

package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createSearchTool returns the search tool definition
func createSearchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search the Red Hat Customer Portal for solutions, articles and documentation"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text search query"),
		),
		mcp.WithArray("products",
			mcp.WithStringItems(),
			mcp.Description("Product filters, e.g. [\"Red Hat Enterprise Linux\", \"Red Hat OpenShift Container Platform\"]"),
		),
		mcp.WithArray("doc_types",
			mcp.WithStringItems(),
			mcp.Description("Document type filters, e.g. [\"Solution\", \"Article\"]"),
		),
		mcp.WithNumber("page",
			mcp.Description("Result page, starting at 1 (default: 1)"),
		),
		mcp.WithNumber("rows",
			mcp.Description("Results per page (default: 20)"),
		),
		mcp.WithString("sort_by",
			mcp.Description("Sort order: relevant, \"lastModifiedDate desc\" or \"lastModifiedDate asc\""),
		),
	)
}

// createGetAlertsTool returns the get_alerts tool definition
func createGetAlertsTool() mcp.Tool {
	return mcp.NewTool("get_alerts",
		mcp.WithDescription("Get current security advisories for a product"),
		mcp.WithString("product",
			mcp.Required(),
			mcp.Description("Product name, e.g. \"Red Hat Enterprise Linux\""),
		),
	)
}

// createGetDocumentTool returns the get_document tool definition
func createGetDocumentTool() mcp.Tool {
	return mcp.NewTool("get_document",
		mcp.WithDescription("Fetch a single portal document's content and metadata"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Full document URL"),
		),
	)
}

// createListProductsTool returns the list_products tool definition
func createListProductsTool() mcp.Tool {
	return mcp.NewTool("list_products",
		mcp.WithDescription("List the product names accepted as search filters"),
	)
}

// createListDocumentTypesTool returns the list_document_types tool definition
func createListDocumentTypesTool() mcp.Tool {
	return mcp.NewTool("list_document_types",
		mcp.WithDescription("List the document types accepted as search filters"),
	)
}

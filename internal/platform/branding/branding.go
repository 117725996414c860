// Package branding centralizes user-visible product naming.
package branding

// AppName is the product name shown in page titles and headings.
const AppName = "Lizard Geodin"

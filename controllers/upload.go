package controllers

import (
	"parttrack/apperror"
	"parttrack/spreadsheet"

	"github.com/gofiber/fiber/v2"
)

// readUpload reads the rows of the multipart "file" field.
func readUpload(ctx *fiber.Ctx) ([][]string, error) {
	file, err := ctx.FormFile("file")
	if err != nil {
		return nil, apperror.Validation("file is required")
	}
	fileContent, err := file.Open()
	if err != nil {
		return nil, apperror.Validation("failed to open file")
	}
	defer fileContent.Close()

	return spreadsheet.ReadRows(file.Filename, fileContent)
}

package handler

import (
	"github.com/gin-gonic/gin"
)

type DegreeType struct {
	ID    int    `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
}

type Issuer struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

var degreeTypes = []DegreeType{
	{ID: 1, Code: "BSC", Title: "Bachelor of Science"},
	{ID: 2, Code: "MSC", Title: "Master of Science"},
	{ID: 3, Code: "PHD", Title: "Doctor of Philosophy"},
}

var issuers = []Issuer{
	{ID: 1, Name: "University of Latvia", Country: "LV"},
	{ID: 2, Name: "Riga Technical University", Country: "LV"},
}

func (h *Handler) DegreeTypes(c *gin.Context) {
	writeOK(c, degreeTypes)
}

func (h *Handler) Issuers(c *gin.Context) {
	writeOK(c, issuers)
}

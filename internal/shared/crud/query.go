package crud

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// FilterFromQuery reads the shared listing params:
// ?search= &page= &limit= &order_by= &order=desc &include_deleted=true
func FilterFromQuery(c *gin.Context) Filter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

	f := Filter{
		Search:         c.Query("search"),
		IncludeDeleted: c.Query("include_deleted") == "true",
		Limit:          limit,
		OrderBy:        c.Query("order_by"),
		OrderDesc:      c.DefaultQuery("order", "desc") == "desc",
	}
	f = f.Normalize()
	f.Offset = (page - 1) * f.Limit
	return f
}

// PageOf recovers the 1-based page number from a normalized filter
func PageOf(f Filter) int {
	if f.Limit <= 0 {
		return 1
	}
	return f.Offset/f.Limit + 1
}

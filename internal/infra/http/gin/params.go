package ginserver

import (
	"strconv"

	gin "github.com/gin-gonic/gin"

	availabilityapp "bnb/internal/app/handlers/availability"
)

// stateFromQuery reads the widget state a page or API call carries.
func stateFromQuery(c *gin.Context) availabilityapp.State {
	return availabilityapp.State{
		Month: c.Query("month"),
		Nav:   c.Query("nav"),
		Start: c.Query("start"),
		End:   c.Query("end"),
		Pick:  c.Query("pick"),
	}
}

func intQuery(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

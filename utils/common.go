package utils

import "math"

var floatsInf = math.Inf(1)

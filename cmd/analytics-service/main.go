package main

import "momo-analysis/internal/bootstrap/analytics"

func main() { analytics.StartAnalyticsService() }

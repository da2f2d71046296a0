package handlers

import "scriptforum.org/catalog-web/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
    GA4MeasurementID string // e.g. G-XXXXXXXXXX
    Debug            bool
}

// Enabled reports whether the layout should emit the gtag snippet.
func (a Analytics) Enabled() bool {
    return a.GA4MeasurementID != ""
}

// AnalyticsFromConfig copies the analytics settings out of the loaded config.
func AnalyticsFromConfig(cfg config.AnalyticsConfig) Analytics {
    return Analytics{
        GA4MeasurementID: cfg.GA4MeasurementID,
        Debug:            cfg.Debug,
    }
}

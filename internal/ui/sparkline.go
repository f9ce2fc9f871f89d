package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks are block characters for 8-level vertical resolution,
// lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a single-row block-character sparkline scaled to the
// data's own min/max range. Percentage-like data (all values in 0-100)
// uses a fixed 0-100 range so successive frames stay comparable.
func Sparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	minVal, maxVal := bounds(data)
	resampled := resample(data, width)

	var b strings.Builder
	for _, val := range resampled {
		idx := clamp(int(normalize(val, minVal, maxVal)*float64(len(sparkBlocks)-1)), len(sparkBlocks)-1)
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

// ColoredSparkline renders a sparkline colored by the severity of the most
// recent value. Non-percentage data uses the fallback color.
func ColoredSparkline(data []float64, width int, fallback lipgloss.Color) string {
	spark := Sparkline(data, width)
	if len(data) == 0 {
		return spark
	}

	color := fallback
	if _, _, pct := boundsWithKind(data); pct {
		color = MetricColor(data[len(data)-1])
	}
	return lipgloss.NewStyle().Foreground(color).Render(spark)
}

func bounds(data []float64) (minVal, maxVal float64) {
	minVal, maxVal, _ = boundsWithKind(data)
	return minVal, maxVal
}

// boundsWithKind returns the plotting range for the data. Data that fits
// entirely in 0-100 is treated as a percentage and pinned to that range.
func boundsWithKind(data []float64) (minVal, maxVal float64, isPercentage bool) {
	if len(data) == 0 {
		return 0, 100, true
	}

	minVal, maxVal = data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	isPercentage = minVal >= 0 && maxVal <= 100
	if isPercentage {
		minVal, maxVal = 0, 100
	}
	return minVal, maxVal, isPercentage
}

func normalize(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		return (val - minVal) / (maxVal - minVal)
	}
	return 0.5
}

func clamp(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// resample fits data to the target width. Downsampling takes the max of
// each bucket to preserve spikes; upsampling interpolates linearly.
func resample(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}
	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if len(data) > targetSize {
		bucketSize := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucketSize)
			end := int(float64(i+1) * bucketSize)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}
			maxVal := data[start]
			for j := start + 1; j < end; j++ {
				if data[j] > maxVal {
					maxVal = data[j]
				}
			}
			result[i] = maxVal
		}
		return result
	}

	scale := float64(len(data)-1) / float64(targetSize-1)
	for i := 0; i < targetSize; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)
		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}
	return result
}

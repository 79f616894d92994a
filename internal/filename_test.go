package internal

import "testing"

func TestParseDateFromFilename(t *testing.T) {
	testCases := []struct {
		filename   string
		expected   string // Format: "2006-01-02 15:04:05"
		shouldFail bool
	}{
		// Generic patterns
		{"IMG_20240315_143022.jpg", "2024-03-15 14:30:22", false},
		{"2024-03-15-14-30-22.jpg", "2024-03-15 14:30:22", false},
		{"20240315_143022.jpg", "2024-03-15 14:30:22", false},
		{"2024-03-15.jpg", "2024-03-15 12:00:00", false},
		{"20240315.jpg", "2024-03-15 12:00:00", false},

		// App-specific patterns
		{"signal_20240315_143022.jpg", "2024-03-15 14:30:22", false},
		{"SIGNAL_20240315_143022.JPG", "2024-03-15 14:30:22", false},
		{"IMG-20240315-WA0001.jpg", "2024-03-15 12:00:00", false},
		{"VID-20240315-WA0001.mp4", "2024-03-15 12:00:00", false},
		{"telegram_2024-03-15_14-30-22.mp4", "2024-03-15 14:30:22", false},
		{"telegram_2024-03-15.jpg", "2024-03-15 12:00:00", false},
		{"PXL_20240315_143022123.jpg", "2024-03-15 14:30:22", false},

		// Invalid cases
		{"random_filename.jpg", "", true},
		{"IMG_99999999_999999.jpg", "", true},
		{"signal_2024_99_99.jpg", "", true},
		{"image.jpg", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			result, err := parseDateFromFilename(tc.filename)

			if tc.shouldFail {
				if err == nil {
					t.Errorf("Expected parsing to fail for %s, but got: %s", tc.filename, result.Format("2006-01-02 15:04:05"))
				}
				return
			}

			if err != nil {
				t.Errorf("Parsing failed for %s: %v", tc.filename, err)
				return
			}

			actual := result.Format("2006-01-02 15:04:05")
			if actual != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, actual)
			}
		})
	}
}

package i18n

import "testing"

func TestArabicCoversEnglish(t *testing.T) {
	for key := range en {
		if _, ok := ar[key]; !ok {
			t.Fatalf("arabic table missing %q", key)
		}
	}
	for key := range ar {
		if _, ok := en[key]; !ok {
			t.Fatalf("english table missing %q", key)
		}
	}
}

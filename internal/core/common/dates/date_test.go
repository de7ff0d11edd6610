package dates_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/frahmantamala/hrtool/internal/core/common/dates"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDates(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dates Suite")
}

var _ = Describe("Date", func() {
	It("decodes a plain day", func() {
		var d dates.Date
		Expect(json.Unmarshal([]byte(`"1990-02-28"`), &d)).To(Succeed())
		Expect(d.Time).To(Equal(time.Date(1990, 2, 28, 0, 0, 0, 0, time.UTC)))
	})

	It("truncates an RFC 3339 timestamp to its UTC day", func() {
		var d dates.Date
		Expect(json.Unmarshal([]byte(`"2024-03-01T23:30:00-02:00"`), &d)).To(Succeed())
		Expect(d.String()).To(Equal("2024-03-02"))
	})

	It("encodes as a day", func() {
		b, err := json.Marshal(dates.NewDate(time.Date(2024, 1, 5, 15, 0, 0, 0, time.UTC)))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal(`"2024-01-05"`))
	})

	It("treats null as absent", func() {
		var payload struct {
			EndDate *dates.Date `json:"end_date"`
		}
		Expect(json.Unmarshal([]byte(`{"end_date":null}`), &payload)).To(Succeed())
		Expect(dates.Ptr(payload.EndDate)).To(BeNil())
	})

	It("rejects garbage", func() {
		_, err := dates.Parse("tomorrow")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Timestamp", func() {
	It("keeps the time of day of an RFC 3339 value", func() {
		var ts dates.Timestamp
		Expect(json.Unmarshal([]byte(`"2026-10-19T10:00:00+02:00"`), &ts)).To(Succeed())
		Expect(ts.Time).To(Equal(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)))
	})

	It("maps a bare day to midnight UTC", func() {
		ts, err := dates.ParseTimestamp("2026-10-19")
		Expect(err).NotTo(HaveOccurred())
		Expect(ts.Time).To(Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	})

	It("encodes as RFC 3339 in UTC", func() {
		b, err := json.Marshal(dates.Timestamp{Time: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal(`"2026-10-19T08:00:00Z"`))
	})

	It("treats null as absent", func() {
		var payload struct {
			ExpiryDate *dates.Timestamp `json:"expiry_date"`
		}
		Expect(json.Unmarshal([]byte(`{"expiry_date":null}`), &payload)).To(Succeed())
		Expect(dates.TimePtr(payload.ExpiryDate)).To(BeNil())
	})

	It("rejects garbage", func() {
		_, err := dates.ParseTimestamp("next week")
		Expect(err).To(HaveOccurred())
	})
})

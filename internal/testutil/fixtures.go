package testutil

// CatPurrsHCL is the shared metric fixture: a Weekly series whose
// figures make the arithmetic of change and avg_freq easy to verify by
// hand (25% week on week, 233.3% quarter on quarter).
const CatPurrsHCL = `
metric "cat_purrs" {
  long_name   = "Cat purrs"
  description = "Purrs recorded by the office cat"
  frequency   = "Weekly"

  point {
    date  = "2021-11-04"
    value = 3
  }

  point {
    date  = "2022-01-28"
    value = 8
  }

  point {
    date  = "2022-02-04"
    value = 10
  }
}
`

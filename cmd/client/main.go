package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nulltea/evaldomain/core"
	"github.com/nulltea/evaldomain/domain"
	"github.com/nulltea/evaldomain/fft"
	"github.com/nulltea/evaldomain/poly"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "URL of the evaluation domain server")
	modulus := flag.Uint64("modulus", core.Modulus57, "Prime field modulus, must match the server")
	logM := flag.Int("logM", 12, "log2 of the vanishing polynomial degree")
	seed := flag.Uint64("seed", 1, "Seed of the random polynomials")
	rhoInv := flag.Int("rhoInv", 2, "Inverse rate of the Reed-Solomon code")
	flag.Parse()

	// Create a custom HTTP client with increased timeouts
	client := &http.Client{
		Timeout: 5 * time.Minute,
	}

	field, err := core.NewPrimeField(*modulus)
	if err != nil {
		panic(err)
	}
	engine := fft.NewEngine(field, fft.NewPool(0))
	m := 1 << *logM

	// a * b - (a * b mod x^m - 1) vanishes on the m-th roots of unity
	a := poly.NewDensePoly(core.MustRandomElements(field, m, *seed))
	b := poly.NewDensePoly(core.MustRandomElements(field, m, *seed+1))
	ab, err := a.FFTMul(engine, b)
	if err != nil {
		panic(err)
	}
	reduced := make([]core.Element, m)
	for i := range ab.Coefficients {
		field.AddAssign(&reduced[i%m], &ab.Coefficients[i], &reduced[i%m])
	}
	numerator := ab.Sub(field, poly.NewDensePoly(reduced))

	fmt.Printf("Requesting quotient of a degree %d numerator by x^%d - 1...\n", numerator.Degree(), m)
	payload := post(client, fmt.Sprintf("%s/quotient?m=%d", *serverURL, m), core.MarshalElements(numerator.Coefficients))

	coeffs, err := core.UnmarshalElements(field, payload)
	if err != nil {
		panic(fmt.Sprintf("Failed to decode quotient: %v", err))
	}
	quotient := poly.NewDensePoly(coeffs)

	span := core.StartSpan("Verify quotient", nil)
	if !poly.CheckQuotient(field, numerator, quotient, m, core.NewTranscript("quotient")) {
		panic("Quotient check failed")
	}
	span.End()
	fmt.Printf("Received quotient of degree %d (%s)\n", quotient.Degree(), humanize.Bytes(uint64(len(payload))))

	// round trip a domain through the coset transforms on the server
	d, err := a.ToDomain(engine)
	if err != nil {
		panic(err)
	}
	data, err := d.MarshalBinary()
	if err != nil {
		panic(err)
	}

	for _, op := range []string{"coset", "icoset"} {
		data = post(client, fmt.Sprintf("%s/transform?op=%s", *serverURL, op), data)
	}

	back := domain.Empty(engine)
	if err := back.UnmarshalBinary(data); err != nil {
		panic(fmt.Sprintf("Failed to decode domain: %v", err))
	}
	if !poly.FromDomain(back).Equal(a) {
		panic("Coset round trip changed the coefficients")
	}
	fmt.Printf("Coset round trip of %s coefficients succeeded\n", humanize.Comma(int64(m)))

	payload = post(client, fmt.Sprintf("%s/encode?rhoInv=%d", *serverURL, *rhoInv), core.MarshalElements(a.Coefficients))
	codeword, err := core.UnmarshalElements(field, payload)
	if err != nil {
		panic(fmt.Sprintf("Failed to decode codeword: %v", err))
	}

	local, err := poly.Encode(engine, a.Coefficients, *rhoInv)
	if err != nil {
		panic(err)
	}
	if !slices.Equal(local, codeword) {
		panic("Codeword mismatch")
	}
	fmt.Printf("Received codeword of %s elements\n", humanize.Comma(int64(len(codeword))))
}

func post(client *http.Client, url string, body []byte) []byte {
	resp, err := client.Post(url, "application/octet-stream", bytes.NewReader(body))
	if err != nil {
		panic(fmt.Sprintf("Failed to call %s: %v", url, err))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		panic(fmt.Sprintf("Failed to read response: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("Server returned error status: %d: %s", resp.StatusCode, payload))
	}

	return payload
}

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/stdr"
	"github.com/nulltea/evaldomain/core"
	"github.com/nulltea/evaldomain/domain"
	"github.com/nulltea/evaldomain/fft"
	"github.com/nulltea/evaldomain/poly"
)

// maxBody bounds request bodies to a domain of 2^24 elements.
const maxBody = (1 << 24) * core.ElementBytes

type server struct {
	engine    *fft.Engine
	benchMode bool
}

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	modulus := flag.Uint64("modulus", core.Modulus57, "Prime field modulus")
	lanes := flag.Int("lanes", 0, "Number of parallel lanes, 0 for GOMAXPROCS")
	verbosity := flag.Int("v", 0, "Log verbosity")
	benchMode := flag.Bool("benchMode", false, "Benchmark mode") // stops server after the first quotient
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))
	core.SetLogger(logger)

	field, err := core.NewPrimeField(*modulus)
	if err != nil {
		panic(err)
	}

	s := &server{
		engine:    fft.NewEngine(field, fft.NewPool(*lanes)),
		benchMode: *benchMode,
	}

	http.HandleFunc("/transform", s.handleTransform)
	http.HandleFunc("/quotient", s.handleQuotient)
	http.HandleFunc("/encode", s.handleEncode)

	logger.Info("evaluation domain server started", "port", *port, "modulus", field.Modulus(), "twoAdicity", field.TwoAdicity(), "lanes", s.engine.Pool().Lanes())
	if err := http.ListenAndServe(fmt.Sprintf(":%d", *port), nil); err != nil {
		panic(err)
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}

	return body, true
}

func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	str := r.URL.Query().Get(name)
	if str == "" {
		http.Error(w, "Missing required query parameter: "+name, http.StatusBadRequest)
		return 0, false
	}

	v, err := strconv.Atoi(str)
	if err != nil || v <= 0 {
		http.Error(w, "Invalid "+name+" value", http.StatusBadRequest)
		return 0, false
	}

	return v, true
}

func writeBytes(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := w.Write(data); err != nil {
		core.Logger().Error(err, "failed to write response")
	}
}

// handleTransform applies op to a marshalled evaluation domain and returns it
// marshalled again.
func (s *server) handleTransform(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	d := domain.Empty(s.engine)
	if err := d.UnmarshalBinary(body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	op := r.URL.Query().Get("op")
	span := core.StartSpan("transform "+op, nil)
	switch op {
	case "fft":
		d.FFT()
	case "ifft":
		d.IFFT()
	case "coset":
		d.CosetFFT()
	case "icoset":
		d.ICosetFFT()
	default:
		span.End()
		http.Error(w, "Invalid op, expected one of fft, ifft, coset, icoset", http.StatusBadRequest)
		return
	}
	elapsed := span.End()

	data, err := d.MarshalBinary()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	core.Logger().Info("transform", "op", op, "size", d.Size(), "bytes", humanize.Bytes(uint64(len(data))), "elapsed", elapsed)
	writeBytes(w, data)
}

// handleQuotient divides the numerator in the body by x^m - 1. Numerators that
// are not divisible are rejected.
func (s *server) handleQuotient(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	m, ok := queryInt(w, r, "m")
	if !ok {
		return
	}

	field := s.engine.Field()
	coeffs, err := core.UnmarshalElements(field, body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	numerator := poly.NewDensePoly(coeffs)
	start := time.Now()
	quotient, err := poly.DivideByVanishing(s.engine, numerator, m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !poly.CheckQuotient(field, numerator, quotient, m, core.NewTranscript("quotient")) {
		http.Error(w, "Numerator is not divisible by the vanishing polynomial", http.StatusUnprocessableEntity)
		return
	}

	core.Logger().Info("quotient", "m", m, "numerator", humanize.Comma(int64(len(coeffs))), "elapsed", time.Since(start))
	writeBytes(w, core.MarshalElements(quotient.Coefficients))

	if s.benchMode {
		go func() {
			time.Sleep(100 * time.Millisecond)
			fmt.Println("Benchmark completed, exiting...")
			os.Exit(0)
		}()
	}
}

// handleEncode returns the Reed-Solomon codeword of the row in the body.
func (s *server) handleEncode(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	rhoInv, ok := queryInt(w, r, "rhoInv")
	if !ok {
		return
	}

	row, err := core.UnmarshalElements(s.engine.Field(), body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(row) == 0 {
		http.Error(w, "Empty row", http.StatusBadRequest)
		return
	}

	codeword, err := poly.Encode(s.engine, row, rhoInv)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeBytes(w, core.MarshalElements(codeword))
}

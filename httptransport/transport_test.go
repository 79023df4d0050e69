package httptransport_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bdragon300/tusclient"
	"github.com/bdragon300/tusclient/httptransport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/vitorsalgado/mocha/v3"
	"github.com/vitorsalgado/mocha/v3/expect"
	"github.com/vitorsalgado/mocha/v3/params"
	"github.com/vitorsalgado/mocha/v3/reply"
)

func tRequest(method, location string) *mocha.MockBuilder {
	return mocha.Request().
		URL(expect.URLPath(location)).Method(method).
		Header("Tus-Resumable", expect.ToEqual("1.0.0"))
}

func tReply(startReply *reply.StdReply) *reply.StdReply {
	return startReply.Header("Tus-Resumable", "1.0.0")
}

// mockTusUploader accepts PATCH requests and acknowledges all data it received so far
type mockTusUploader struct {
	buf *bytes.Buffer
}

func (mtu *mockTusUploader) handler() func(r *http.Request, m reply.M, p params.P) (*reply.Response, error) {
	return func(r *http.Request, m reply.M, p params.P) (*reply.Response, error) {
		resp, err := tReply(reply.NoContent()).Build(r, m, p)
		if err != nil {
			return resp, err
		}
		if _, err = io.Copy(mtu.buf, r.Body); err != nil {
			return resp, err
		}
		resp.Header.Set("Upload-Offset", strconv.Itoa(mtu.buf.Len()))
		return resp, nil
	}
}

var _ = Describe("Transport", func() {
	var srvMock *mocha.Mocha
	var transport *httptransport.Transport
	ctx := context.Background()

	BeforeEach(func() {
		srvMock = mocha.New(GinkgoT())
		srvMock.Start()
		var err error
		transport, err = httptransport.NewFromString(srvMock.URL()+"/files/", nil)
		Ω(err).Should(Succeed())
	})
	AfterEach(func() {
		srvMock.AssertCalled(GinkgoT())
		Ω(srvMock.Close()).Should(Succeed())
	})

	Context("RoundTrip", func() {
		It("should resolve relative location and pass headers both ways", func() {
			srvMock.AddMocks(tRequest(http.MethodHead, "/files/foo").
				Reply(tReply(reply.OK()).
					Header("Upload-Offset", "64").
					Header("Upload-Length", "1024")),
			)
			req := &tusclient.Request{
				Method:   tusclient.MethodHead,
				Location: "foo",
				Header:   tusclient.Header{"tus-resumable": "1.0.0"},
			}

			resp, err := transport.RoundTrip(ctx, req)
			Ω(err).Should(Succeed())
			Ω(resp.StatusCode).Should(Equal(http.StatusOK))
			Ω(resp.Header.Get("Upload-Offset")).Should(Equal("64"))
			Ω(resp.Header.Get("upload-length")).Should(Equal("1024"))
		})
		It("should resolve absolute path location", func() {
			srvMock.AddMocks(tRequest(http.MethodDelete, "/other/bar").Reply(tReply(reply.NoContent())))
			req := &tusclient.Request{
				Method:   tusclient.MethodDelete,
				Location: "/other/bar",
				Header:   tusclient.Header{"tus-resumable": "1.0.0"},
			}

			Ω(transport.RoundTrip(ctx, req)).Should(HaveField("StatusCode", http.StatusNoContent))
		})
		It("should return non-2xx statuses as responses", func() {
			srvMock.AddMocks(tRequest(http.MethodHead, "/files/foo").Reply(reply.Status(http.StatusNotFound)))
			req := &tusclient.Request{
				Method:   tusclient.MethodHead,
				Location: "foo",
				Header:   tusclient.Header{"tus-resumable": "1.0.0"},
			}

			Ω(transport.RoundTrip(ctx, req)).Should(HaveField("StatusCode", http.StatusNotFound))
		})
		It("should return error when server is unreachable", func() {
			u, _ := url.Parse("http://127.0.0.1:1/files/")
			tr := httptransport.New(u, nil)

			_, err := tr.RoundTrip(ctx, &tusclient.Request{Method: tusclient.MethodOptions, Location: "foo"})
			Ω(err).Should(HaveOccurred())
		})
	})

	Context("with Client", func() {
		var cl *tusclient.Client

		BeforeEach(func() {
			cl = tusclient.NewClient(transport)
		})

		It("should discover server capabilities", func() {
			srvMock.AddMocks(mocha.Request().
				URL(expect.URLPath("/files/")).Method(http.MethodOptions).
				Header("Tus-Resumable", expect.ToBeEmpty()).
				Reply(tReply(reply.NoContent()).
					Header("Tus-Version", "1.0.0,0.2.2").
					Header("Tus-Extension", "creation, termination").
					Header("Tus-Max-Size", "12345")),
			)

			Ω(cl.GetServerInfo(ctx, "")).Should(Equal(tusclient.ServerInfo{
				SupportedVersions: []string{"1.0.0", "0.2.2"},
				Extensions:        []tusclient.Extension{tusclient.ExtensionCreation, tusclient.ExtensionTermination},
				MaxUploadSize:     12345,
			}))
		})
		It("should create an upload with metadata", func() {
			md := map[string]string{"filename": "hello.txt"}
			mdEncoded, err := tusclient.EncodeMetadata(md)
			Ω(err).Should(Succeed())
			srvMock.AddMocks(tRequest(http.MethodPost, "/files/").
				Header("Upload-Length", expect.ToEqual("11")).
				Header("Upload-Metadata", expect.ToEqual(mdEncoded)).
				Reply(tReply(reply.Created()).Header("Location", "/files/abc")),
			)

			Ω(cl.CreateWithMetadata(ctx, "", 11, md)).Should(Equal("/files/abc"))
		})
		It("should upload data chunk by chunk", func() {
			data := []byte("Hello world!")
			up := mockTusUploader{buf: bytes.NewBuffer(nil)}
			srvMock.AddMocks(
				tRequest(http.MethodHead, "/files/abc").
					Reply(tReply(reply.OK()).
						Header("Upload-Offset", "0").
						Header("Upload-Length", strconv.Itoa(len(data)))),
				tRequest(http.MethodPatch, "/files/abc").
					Header("Content-Type", expect.ToEqual("application/offset+octet-stream")).
					ReplyFunction(up.handler()),
			)

			Ω(cl.UploadWithChunkSize(ctx, "/files/abc", bytes.NewReader(data), 5)).Should(Succeed())
			Ω(up.buf.Bytes()).Should(Equal(data))
		})
		It("should delete an upload", func() {
			srvMock.AddMocks(tRequest(http.MethodDelete, "/files/abc").Reply(tReply(reply.NoContent())))

			Ω(cl.Delete(ctx, "/files/abc")).Should(Succeed())
		})
	})
})
